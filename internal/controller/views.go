package controller

import (
	"fmt"
	"strings"

	"appdownloader/internal/models"
)

// View identifies the single screen rendered into the content region.
type View int

const (
	// ViewUnresolved is the state before RestoreSession completes.
	ViewUnresolved View = iota
	ViewLoginForm
	ViewSignupForm
	ViewAdminHome
	ViewAppList
	ViewUserHome
	ViewProfile
	ViewPoints
	ViewTasks
)

var viewNames = map[View]string{
	ViewUnresolved: "unresolved",
	ViewLoginForm:  "login",
	ViewSignupForm: "signup",
	ViewAdminHome:  "admin-home",
	ViewAppList:    "app-list",
	ViewUserHome:   "user-home",
	ViewProfile:    "profile",
	ViewPoints:     "points",
	ViewTasks:      "tasks",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// ParseView resolves a view by its String name.
func ParseView(name string) (View, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for view, viewName := range viewNames {
		if viewName == name {
			return view, nil
		}
	}
	return ViewUnresolved, fmt.Errorf("controller: unknown view %q", name)
}

// Role selects the navigation a user is offered.
type Role int

const (
	RoleUser Role = iota
	RoleStaff
)

func (r Role) String() string {
	if r == RoleStaff {
		return "staff"
	}
	return "user"
}

// RoleOf derives the role of an identity.
func RoleOf(identity models.Identity) Role {
	if identity.IsStaff {
		return RoleStaff
	}
	return RoleUser
}

// allowedViews is the single role -> views table consulted by navigation and rendering.
// The first entry of each list is the role's home view.
var allowedViews = map[Role][]View{
	RoleStaff: {ViewAdminHome, ViewAppList},
	RoleUser:  {ViewUserHome, ViewProfile, ViewPoints, ViewTasks},
}

// AllowedViews returns the views reachable by role, home first.
func AllowedViews(role Role) []View {
	return append([]View(nil), allowedViews[role]...)
}

// HomeView returns the landing view of role.
func HomeView(role Role) View {
	return allowedViews[role][0]
}

// Allowed reports whether role may navigate to view.
func Allowed(role Role, view View) bool {
	for _, allowed := range allowedViews[role] {
		if allowed == view {
			return true
		}
	}
	return false
}
