// Package controller implements the session/view state machine of the client.
// A Controller holds at most one authenticated identity, decides which view is active from
// authentication state, role and navigation, and keeps that state in sync with the remote
// service. It is driven by a single actor and is not safe for concurrent use.
package controller

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks appdownloader/internal/controller API

import (
	"context"
	"errors"

	"appdownloader/internal/api"
	"appdownloader/internal/models"
	"appdownloader/internal/pkg/logger"
	"appdownloader/internal/session"
)

var (
	// ErrNotAuthenticated is returned by operations that need a session when none is held.
	ErrNotAuthenticated = errors.New("controller: not authenticated")
	// ErrAlreadyAuthenticated is returned when an unauthenticated form is requested during a session.
	ErrAlreadyAuthenticated = errors.New("controller: already authenticated")
	// ErrViewNotAllowed indicates navigation outside the current role's views.
	ErrViewNotAllowed = errors.New("controller: view not allowed for role")
	// ErrStaffOnly is returned when a non-staff identity attempts a staff operation.
	ErrStaffOnly = errors.New("controller: staff only")
	// ErrMissingCredentials indicates an empty username or password.
	ErrMissingCredentials = errors.New("controller: missing username or password")
	// ErrSessionRejected indicates that the remote service refused a restored session.
	ErrSessionRejected = errors.New("controller: stored session rejected")
	// ErrAlreadyDownloaded is returned when the service refuses a download.
	ErrAlreadyDownloaded = errors.New("controller: app already downloaded")
	// ErrPickCancelled is returned by a FilePicker when the user dismisses it.
	ErrPickCancelled = errors.New("controller: file selection cancelled")
	// ErrNoPicker indicates that no FilePicker was configured.
	ErrNoPicker = errors.New("controller: no file picker")
)

// API is the remote service as seen by the controller.
type API interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Signup(ctx context.Context, username, password string) error
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	ListApps(ctx context.Context, token string) ([]models.App, error)
	AddApp(ctx context.Context, token string, req models.AddAppRequest) error
	ListTasks(ctx context.Context, token string) (*models.TasksResponse, error)
	DownloadApp(ctx context.Context, token string, appID int) (*models.DownloadResponse, error)
	UploadScreenshot(ctx context.Context, token string, taskID int, file api.File) (*models.UploadResponse, error)
}

// Level grades a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is a transient message shown on top of the active view.
type Notice struct {
	Level   Level
	Message string
}

// CatalogEntry is one app of the user home catalog.
type CatalogEntry struct {
	App        models.App
	Downloaded bool
}

// TaskEntry is a task joined with the app it claims.
type TaskEntry struct {
	Task models.Task
	App  models.App
}

// Screen is everything a renderer needs to draw the active view.
// Only the fields of the active view are populated.
type Screen struct {
	View     View
	Nav      []View
	Identity *models.Identity
	Catalog  []CatalogEntry
	Apps     []models.App
	Tasks    []TaskEntry
	Failure  string
}

// Renderer draws screens and notices.
type Renderer interface {
	Render(screen Screen)
	Notify(notice Notice)
}

// FilePicker presents a file picker or drop target and returns the chosen file.
// It returns ErrPickCancelled when the user dismisses it.
type FilePicker interface {
	PickFile(ctx context.Context) (api.File, error)
}

// Controller is the client's session/view state machine.
type Controller struct {
	api      API
	store    session.Store
	renderer Renderer
	picker   FilePicker
	log      *logger.Logger

	token    string
	identity *models.Identity
	view     View
}

// New creates a Controller in the unresolved state. picker may be nil.
func New(remote API, store session.Store, renderer Renderer, picker FilePicker, l *logger.Logger) *Controller {
	return &Controller{api: remote, store: store, renderer: renderer, picker: picker, log: l, view: ViewUnresolved}
}

// View returns the active view.
func (c *Controller) View() View {
	return c.view
}

// Identity returns a copy of the current identity and whether one is held.
func (c *Controller) Identity() (models.Identity, bool) {
	if c.identity == nil {
		return models.Identity{}, false
	}
	return *c.identity, true
}

// Nav returns the navigation offered to the current identity, empty when logged out.
func (c *Controller) Nav() []View {
	if c.identity == nil {
		return nil
	}
	return AllowedViews(RoleOf(*c.identity))
}

func (c *Controller) render(screen Screen) {
	screen.View = c.view
	screen.Nav = c.Nav()
	if c.identity != nil {
		identity := *c.identity
		screen.Identity = &identity
	}
	c.renderer.Render(screen)
}

func (c *Controller) notify(level Level, message string) {
	c.renderer.Notify(Notice{Level: level, Message: message})
}

// persist mirrors the in-memory session into the store. A store failure only costs durability.
func (c *Controller) persist() {
	if c.identity == nil {
		return
	}
	if err := c.store.Save(c.token, *c.identity); err != nil {
		c.log.Sugar().Errorf("Failed to persist session: %s", err)
	}
}

func (c *Controller) requireSession() error {
	if c.identity == nil || c.token == "" {
		return ErrNotAuthenticated
	}
	return nil
}
