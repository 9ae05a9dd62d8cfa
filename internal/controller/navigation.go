package controller

import (
	"context"
	"errors"
	"fmt"
	"io"

	"appdownloader/internal/api"
	"appdownloader/internal/models"

	"golang.org/x/sync/errgroup"
)

const (
	msgProfileFailed     = "Failed to load profile. Please try again later."
	msgPointsFailed      = "Failed to load points. Please try again later."
	msgTasksFailed       = "Failed to load tasks. Please try again later."
	msgCatalogFailed     = "Error loading apps. Please try again later."
	msgAppListFailed     = "Error loading app list. Please try again later."
	msgAppAdded          = "App added successfully"
	msgAddAppFailed      = "Failed to add app"
	msgDownloaded        = "App downloaded! You earned %d points."
	msgAlreadyDownloaded = "You have already downloaded this app"
	msgDownloadFailed    = "An error occurred while downloading the app. Please try again later."
	msgUploaded          = "Screenshot uploaded successfully!"
	msgUploadFailed      = "Failed to upload screenshot: %s"
	msgUploadError       = "An error occurred while uploading the screenshot"
	msgPickFailed        = "Could not open the selected file"
	unknownAppName       = "Unknown App"
	unknownUploadFailure = "Unknown error"
)

// Home navigates to the current role's home view.
func (c *Controller) Home(ctx context.Context) error {
	if c.identity == nil {
		return ErrNotAuthenticated
	}
	return c.Navigate(ctx, HomeView(RoleOf(*c.identity)))
}

// Navigate activates target and loads its data. Targets outside the current role's views
// return ErrViewNotAllowed without changing state. Load failures are rendered as a failure
// placeholder and also returned.
func (c *Controller) Navigate(ctx context.Context, target View) error {
	if c.identity == nil {
		return ErrNotAuthenticated
	}
	role := RoleOf(*c.identity)
	if !Allowed(role, target) {
		c.log.Sugar().Errorf("Navigation to %s is not offered to %s", target, role)
		return fmt.Errorf("%w: %s for %s", ErrViewNotAllowed, target, role)
	}

	c.view = target
	switch target {
	case ViewAdminHome:
		c.render(Screen{})
		return nil
	case ViewAppList:
		return c.loadAppList(ctx)
	case ViewUserHome:
		return c.loadCatalog(ctx)
	case ViewProfile:
		return c.loadProfile(ctx, msgProfileFailed)
	case ViewPoints:
		return c.loadProfile(ctx, msgPointsFailed)
	case ViewTasks:
		return c.loadTasks(ctx)
	}
	return nil
}

// ListApps fetches the catalog.
func (c *Controller) ListApps(ctx context.Context) ([]models.App, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}
	return c.api.ListApps(ctx, c.token)
}

// AddApp adds a catalog entry. Staff only; the request is validated against the category
// table before it is sent. On success AdminHome is shown again with an empty form.
func (c *Controller) AddApp(ctx context.Context, req models.AddAppRequest) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if !c.identity.IsStaff {
		return ErrStaffOnly
	}
	if err := req.Validate(); err != nil {
		c.notify(LevelError, fmt.Sprintf("%s: %s", msgAddAppFailed, err))
		return err
	}

	if err := c.api.AddApp(ctx, c.token, req); err != nil {
		c.log.Sugar().Errorf("Error adding app: %s", err)
		c.notify(LevelError, msgAddAppFailed)
		return err
	}

	c.notify(LevelInfo, msgAppAdded)
	return c.Navigate(ctx, ViewAdminHome)
}

// DownloadApp claims appID. Any non-success response is reported as already downloaded and
// returned as ErrAlreadyDownloaded. On success the task list is shown.
func (c *Controller) DownloadApp(ctx context.Context, appID int) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	resp, err := c.api.DownloadApp(ctx, c.token, appID)
	if err != nil {
		c.log.Sugar().Errorf("Error downloading app %d: %s", appID, err)
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			c.notify(LevelError, msgAlreadyDownloaded)
			return fmt.Errorf("%w: %v", ErrAlreadyDownloaded, err)
		}
		c.notify(LevelError, msgDownloadFailed)
		return err
	}

	c.mergeProfile(resp.UserProfile)
	c.notify(LevelInfo, fmt.Sprintf(msgDownloaded, resp.PointsEarned))
	return c.showTasksIfAllowed(ctx)
}

// ListTasksWithApps fetches tasks and the catalog together and joins each task to its app.
// Tasks referencing an app missing from the catalog get an "Unknown App" placeholder worth
// 0 points. If either read fails the whole operation fails.
func (c *Controller) ListTasksWithApps(ctx context.Context) ([]TaskEntry, error) {
	apps, tasks, err := c.fetchAppsAndTasks(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.App, len(apps))
	for _, app := range apps {
		byID[app.ID] = app
	}
	entries := make([]TaskEntry, 0, len(tasks))
	for _, task := range tasks {
		app, ok := byID[task.App]
		if !ok {
			app = models.App{ID: task.App, Name: unknownAppName, Points: 0}
		}
		entries = append(entries, TaskEntry{Task: task, App: app})
	}
	return entries, nil
}

// UploadScreenshot sends file as proof for taskID. On success the task list is refreshed;
// on failure the server-provided message, or a generic one, is shown.
func (c *Controller) UploadScreenshot(ctx context.Context, taskID int, file api.File) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	resp, err := c.api.UploadScreenshot(ctx, c.token, taskID, file)
	if err != nil {
		c.log.Sugar().Errorf("Error uploading screenshot for task %d: %s", taskID, err)
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			message := api.ServerMessage(err)
			if message == "" {
				message = unknownUploadFailure
			}
			c.notify(LevelError, fmt.Sprintf(msgUploadFailed, message))
		} else {
			c.notify(LevelError, msgUploadError)
		}
		return err
	}

	c.mergeProfile(resp.UserProfile)
	c.notify(LevelInfo, msgUploaded)
	return c.showTasksIfAllowed(ctx)
}

// PromptScreenshot asks the FilePicker for a screenshot and uploads it for taskID.
// A dismissed picker is not an error.
func (c *Controller) PromptScreenshot(ctx context.Context, taskID int) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if c.picker == nil {
		return ErrNoPicker
	}

	file, err := c.picker.PickFile(ctx)
	if errors.Is(err, ErrPickCancelled) {
		return nil
	}
	if err != nil {
		c.log.Sugar().Errorf("File selection failed: %s", err)
		c.notify(LevelError, msgPickFailed)
		return err
	}
	if closer, ok := file.Content.(io.Closer); ok {
		defer closer.Close()
	}
	return c.UploadScreenshot(ctx, taskID, file)
}

// mergeProfile folds a profile embedded in a mutation response into the identity.
// Responses without one leave the identity and the stored session untouched.
func (c *Controller) mergeProfile(profile *models.Profile) {
	if profile == nil {
		return
	}
	c.identity.MergeProfile(*profile)
	c.persist()
}

func (c *Controller) showTasksIfAllowed(ctx context.Context) error {
	if Allowed(RoleOf(*c.identity), ViewTasks) {
		return c.Navigate(ctx, ViewTasks)
	}
	return nil
}

// fetchAppsAndTasks issues the two independent reads together and merges the returned
// profile into the identity once both have resolved.
func (c *Controller) fetchAppsAndTasks(ctx context.Context) ([]models.App, []models.Task, error) {
	if err := c.requireSession(); err != nil {
		return nil, nil, err
	}
	token := c.token

	var apps []models.App
	var tasks *models.TasksResponse
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		apps, err = c.api.ListApps(groupCtx, token)
		return err
	})
	group.Go(func() error {
		var err error
		tasks, err = c.api.ListTasks(groupCtx, token)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	c.identity.MergeProfile(tasks.UserProfile)
	c.persist()
	return apps, tasks.Tasks, nil
}

func (c *Controller) loadAppList(ctx context.Context) error {
	apps, err := c.ListApps(ctx)
	if err != nil {
		c.log.Sugar().Errorf("Error loading app list: %s", err)
		c.render(Screen{Failure: msgAppListFailed})
		return err
	}
	c.render(Screen{Apps: apps})
	return nil
}

func (c *Controller) loadCatalog(ctx context.Context) error {
	apps, tasks, err := c.fetchAppsAndTasks(ctx)
	if err != nil {
		c.log.Sugar().Errorf("Error loading home page: %s", err)
		c.render(Screen{Failure: msgCatalogFailed})
		return err
	}

	downloaded := make(map[int]bool, len(tasks))
	for _, task := range tasks {
		downloaded[task.App] = true
	}
	catalog := make([]CatalogEntry, 0, len(apps))
	for _, app := range apps {
		catalog = append(catalog, CatalogEntry{App: app, Downloaded: downloaded[app.ID]})
	}
	c.render(Screen{Catalog: catalog})
	return nil
}

func (c *Controller) loadProfile(ctx context.Context, failure string) error {
	if err := c.RefreshProfile(ctx); err != nil {
		c.render(Screen{Failure: failure})
		return err
	}
	c.render(Screen{})
	return nil
}

func (c *Controller) loadTasks(ctx context.Context) error {
	entries, err := c.ListTasksWithApps(ctx)
	if err != nil {
		c.log.Sugar().Errorf("Error loading tasks: %s", err)
		c.render(Screen{Failure: msgTasksFailed})
		return err
	}
	c.render(Screen{Tasks: entries})
	return nil
}
