// Package app provides the business rules of the reference server: account login and signup,
// the staff-managed app catalog, downloads that credit points, and screenshot proofs that
// complete tasks. It sits between the HTTP handlers and the storage layer and turns storage
// failures into the sentinel errors below.
package app

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"appdownloader/internal/models"
	"appdownloader/internal/pkg/auth"
	"appdownloader/internal/pkg/logger"
	"appdownloader/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingUsernameOrPassword indicates that either the username or password is not provided.
	ErrMissingUsernameOrPassword = errors.New("app: missing username or password")
	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("app: invalid credentials")
	// ErrUsernameTaken indicates a signup with an existing username.
	ErrUsernameTaken = errors.New("app: username already exists")
	// ErrUserNotFound indicates a valid token for an account that no longer exists.
	ErrUserNotFound = errors.New("app: user not found")
	// ErrInvalidApp wraps the validation failure of an add-app request.
	ErrInvalidApp = errors.New("app: invalid app")
	// ErrMissingAppID indicates a download request without app_id.
	ErrMissingAppID = errors.New("app: app_id is required")
	// ErrAppNotFound indicates a download of an app missing from the catalog.
	ErrAppNotFound = errors.New("app: app not found")
	// ErrAlreadyDownloaded indicates a second download of the same app by the same user.
	ErrAlreadyDownloaded = errors.New("app: already downloaded")
	// ErrTaskNotFound indicates a task that does not exist or belongs to another user.
	ErrTaskNotFound = errors.New("app: task not found")
	// ErrNoScreenshot indicates an upload without a screenshot file.
	ErrNoScreenshot = errors.New("app: no screenshot provided")
	// ErrNotAnImage indicates an upload whose content is not a supported image.
	ErrNotAnImage = errors.New("app: screenshot is not an image")
)

const (
	downloadedMessage = "Successfully downloaded %s"
	uploadedMessage   = "Screenshot uploaded and task completed"
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ScreenshotStore keeps screenshot files and hands out the references stored on tasks.
type ScreenshotStore interface {
	SaveScreenshot(ext string, content io.Reader) (string, error)
	Remove(reference string) error
}

// App encapsulates the application logic and dependencies required to process requests.
type App struct {
	db    storage.Storage
	media ScreenshotStore
	log   *logger.Logger
}

// NewApp creates and returns a new instance of App.
func NewApp(db storage.Storage, media ScreenshotStore, log *logger.Logger) *App {
	return &App{db: db, media: media, log: log}
}

// ProcessLogin verifies the credentials and issues a token.
func (app *App) ProcessLogin(ctx context.Context, req models.Credentials) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingUsernameOrPassword
	}

	account, err := app.db.CheckUser(ctx, &models.Account{Username: req.Username, Password: req.Password})
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if account.ID == 0 {
		return nil, ErrInvalidCredentials
	}

	return app.issue(account)
}

// ProcessSignup creates a regular account with an empty profile and issues a token.
// The requested staff flag is ignored.
func (app *App) ProcessSignup(ctx context.Context, req models.SignupRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingUsernameOrPassword
	}
	if req.IsStaff {
		app.log.Sugar().Warnf("Ignoring staff flag in signup of %s", req.Username)
	}

	account, err := app.db.CreateUser(ctx, &models.Account{Username: req.Username, Password: req.Password})
	if isUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	return app.issue(account)
}

// SeedStaff creates a staff account unless the username is already taken.
func (app *App) SeedStaff(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingUsernameOrPassword
	}

	account, err := app.db.CheckUser(ctx, &models.Account{Username: username, Password: password})
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		app.log.Sugar().Warnf("Staff account %s exists with a different password, leaving it unchanged", username)
		return nil
	}
	if err != nil {
		return err
	}
	if account.ID != 0 {
		if !account.IsStaff {
			app.log.Sugar().Warnf("Account %s exists but is not staff", username)
		}
		return nil
	}

	_, err = app.db.CreateUser(ctx, &models.Account{Username: username, Password: password, IsStaff: true})
	if err != nil && !isUniqueViolation(err) {
		return err
	}
	app.log.Sugar().Infof("Seeded staff account %s", username)
	return nil
}

// ProcessProfile returns the profile of userID.
func (app *App) ProcessProfile(ctx context.Context, userID int) (*models.Profile, error) {
	profile, err := app.db.GetProfile(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return profile, err
}

// ProcessListApps returns the catalog.
func (app *App) ProcessListApps(ctx context.Context) ([]models.App, error) {
	return app.db.ListApps(ctx)
}

// ProcessAddApp validates req against the category table and stores it.
func (app *App) ProcessAddApp(ctx context.Context, req models.AddAppRequest) (*models.App, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}
	return app.db.AddApp(ctx, req)
}

// ProcessDownload creates the task for req.AppID and credits the app's points once.
func (app *App) ProcessDownload(ctx context.Context, userID int, req models.DownloadRequest) (*models.DownloadResponse, error) {
	if req.AppID == 0 {
		return nil, ErrMissingAppID
	}

	downloaded, profile, err := app.db.DownloadApp(ctx, userID, req.AppID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrAlreadyDownloaded
	}
	if err != nil {
		return nil, err
	}

	return &models.DownloadResponse{
		Message:      fmt.Sprintf(downloadedMessage, downloaded.Name),
		PointsEarned: downloaded.Points,
		TotalPoints:  profile.PointsEarned,
		UserProfile:  profile,
	}, nil
}

// ProcessTasks returns the tasks of userID together with the current profile.
func (app *App) ProcessTasks(ctx context.Context, userID int) (*models.TasksResponse, error) {
	tasks, err := app.db.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := app.ProcessProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.TasksResponse{Tasks: tasks, UserProfile: *profile}, nil
}

// ProcessUpload stores content as the screenshot of taskID and completes the task.
// Uploading again replaces the screenshot without counting the completion twice.
func (app *App) ProcessUpload(ctx context.Context, userID, taskID int, content io.Reader) (*models.UploadResponse, error) {
	if content == nil {
		return nil, ErrNoScreenshot
	}

	previous, err := app.db.GetTask(ctx, userID, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	const sniffLen = 512
	buffered := bufio.NewReaderSize(content, sniffLen)
	head, err := buffered.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(head) == 0 {
		return nil, ErrNoScreenshot
	}
	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		return nil, ErrNotAnImage
	}

	reference, err := app.media.SaveScreenshot(ext, buffered)
	if err != nil {
		app.log.Sugar().Errorf("Failed to save screenshot: %s", err)
		return nil, err
	}

	task, profile, err := app.db.CompleteTask(ctx, userID, taskID, reference)
	if err != nil {
		if removeErr := app.media.Remove(reference); removeErr != nil {
			app.log.Sugar().Errorf("Failed to remove orphaned screenshot %s: %s", reference, removeErr)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if previous.Screenshot != "" && previous.Screenshot != reference {
		if err := app.media.Remove(previous.Screenshot); err != nil {
			app.log.Sugar().Warnf("Failed to remove replaced screenshot %s: %s", previous.Screenshot, err)
		}
	}

	return &models.UploadResponse{Message: uploadedMessage, Task: *task, UserProfile: profile}, nil
}

func (app *App) issue(account *models.Account) (*models.LoginResponse, error) {
	token, err := auth.GenerateToken(account.ID, account.IsStaff)
	if err != nil {
		app.log.Sugar().Errorf("Failed to generate token: %s", err)
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: account.Public()}, nil
}

func isUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
