// Package terminal is the line-oriented front end of the client. Renderer draws controller
// screens as text, Shell turns typed commands into controller operations, and PathPicker
// lets the user choose a screenshot by path.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"appdownloader/internal/controller"
	"appdownloader/internal/models"
)

var navLabels = map[controller.View]string{
	controller.ViewAdminHome: "Home",
	controller.ViewAppList:   "List Apps",
	controller.ViewUserHome:  "Home",
	controller.ViewProfile:   "Profile",
	controller.ViewPoints:    "Points",
	controller.ViewTasks:     "Tasks",
}

// Renderer writes screens and notices to out.
type Renderer struct {
	out io.Writer
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Notify prints a notice on its own line.
func (r *Renderer) Notify(notice controller.Notice) {
	prefix := "*"
	if notice.Level == controller.LevelError {
		prefix = "!"
	}
	fmt.Fprintf(r.out, "%s %s\n", prefix, notice.Message)
}

// Render draws the header, the navigation and the body of the active view.
func (r *Renderer) Render(screen controller.Screen) {
	if screen.Identity != nil {
		fmt.Fprintf(r.out, "\n== Hello %s ==\n", screen.Identity.Username)
	} else {
		fmt.Fprintln(r.out, "\n== Welcome ==")
	}
	if len(screen.Nav) > 0 {
		fmt.Fprintln(r.out, navLine(screen))
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 40))

	if screen.Failure != "" {
		fmt.Fprintln(r.out, screen.Failure)
		return
	}

	switch screen.View {
	case controller.ViewUnresolved:
		fmt.Fprintln(r.out, "Loading...")
	case controller.ViewLoginForm:
		fmt.Fprintln(r.out, "Login")
		fmt.Fprintln(r.out, "  login <username> <password>")
		fmt.Fprintln(r.out, "Don't have an account? Type: show signup")
	case controller.ViewSignupForm:
		fmt.Fprintln(r.out, "Sign Up")
		fmt.Fprintln(r.out, "  signup <username> <password>")
		fmt.Fprintln(r.out, "Already have an account? Type: show login")
	case controller.ViewAdminHome:
		r.renderAddAppForm()
	case controller.ViewAppList:
		r.renderAppList(screen.Apps)
	case controller.ViewUserHome:
		r.renderCatalog(screen.Catalog)
	case controller.ViewProfile:
		r.renderProfile(screen.Identity)
	case controller.ViewPoints:
		fmt.Fprintln(r.out, "Points")
		r.renderTotals(screen.Identity)
	case controller.ViewTasks:
		r.renderTasks(screen.Identity, screen.Tasks)
	}
}

func navLine(screen controller.Screen) string {
	entries := make([]string, 0, len(screen.Nav)+1)
	for _, view := range screen.Nav {
		label := navLabels[view]
		if view == screen.View {
			label = "*" + label
		}
		entries = append(entries, "["+label+"]")
	}
	entries = append(entries, "[Logout]")
	return strings.Join(entries, " ")
}

func (r *Renderer) renderAddAppForm() {
	fmt.Fprintln(r.out, "Add New App")
	fmt.Fprintln(r.out, `  add "<name>" <url> "<category>" "<sub-category>" <points>`)
	fmt.Fprintln(r.out, "Categories:")
	for _, category := range models.CategoryNames {
		fmt.Fprintf(r.out, "  %s: %s\n", category, strings.Join(models.SubCategories(category), ", "))
	}
}

func (r *Renderer) renderAppList(apps []models.App) {
	fmt.Fprintln(r.out, "App List")
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tCategory\tSub-Category\tPoints")
	for _, app := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", app.Name, app.Category, app.SubCategory, app.Points)
	}
	tw.Flush()
}

func (r *Renderer) renderCatalog(catalog []controller.CatalogEntry) {
	fmt.Fprintln(r.out, "Available Apps")
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, entry := range catalog {
		action := fmt.Sprintf("download %d", entry.App.ID)
		if entry.Downloaded {
			action = "Downloaded"
		}
		fmt.Fprintf(tw, "[%s]\t%s\t%s - %s\t%d POINTS\t%s\n",
			logo(entry.App.Name), entry.App.Name, entry.App.Category, entry.App.SubCategory, entry.App.Points, action)
	}
	tw.Flush()
}

func (r *Renderer) renderProfile(identity *models.Identity) {
	if identity == nil {
		return
	}
	email := identity.Email
	if email == "" {
		email = "Not provided"
	}
	fmt.Fprintln(r.out, "Profile")
	fmt.Fprintf(r.out, "Username: %s\n", identity.Username)
	fmt.Fprintf(r.out, "Email: %s\n", email)
	r.renderTotals(identity)
}

func (r *Renderer) renderTotals(identity *models.Identity) {
	if identity == nil {
		return
	}
	fmt.Fprintf(r.out, "Total Points: %d\n", identity.PointsEarned)
	fmt.Fprintf(r.out, "Tasks Completed: %d\n", identity.TasksCompleted)
}

func (r *Renderer) renderTasks(identity *models.Identity, tasks []controller.TaskEntry) {
	fmt.Fprintln(r.out, "Tasks")
	r.renderTotals(identity)
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, entry := range tasks {
		var status string
		switch {
		case entry.Task.Completed && entry.Task.Screenshot != "":
			status = "Screenshot: " + entry.Task.Screenshot
		case entry.Task.Completed:
			status = "Completed"
		default:
			status = fmt.Sprintf("upload %d", entry.Task.ID)
		}
		fmt.Fprintf(tw, "[%s]\t%s\tPoints: %d\t%s\n", logo(entry.App.Name), entry.App.Name, entry.App.Points, status)
	}
	tw.Flush()
}

func logo(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}
