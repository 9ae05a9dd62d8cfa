// Package service contains the HTTP handlers of the reference server. It parses requests, calls
// the business logic in the app package, maps its sentinel errors to status codes and writes
// JSON responses with {"error": "..."} bodies on failure.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"appdownloader/internal/app"
	"appdownloader/internal/models"
	"appdownloader/internal/pkg/auth"
	"appdownloader/internal/pkg/logger"

	"github.com/go-chi/chi/v5"
)

const (
	requestTimeout = 10 * time.Second
	maxUploadSize  = 10 << 20
)

const (
	msgMissingCredentials = "Username and password are required"
	msgInvalidCredentials = "Invalid credentials"
	msgUsernameTaken      = "A user with that username already exists."
	msgUnauthorized       = "Authentication credentials were not provided."
	msgNotFound           = "Not found."
	msgMissingAppID       = "app_id is required"
	msgAlreadyDownloaded  = "You have already downloaded this app"
	msgNoScreenshot       = "No screenshot provided"
	msgNotAnImage         = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

type handlers struct {
	app *app.App
	log *logger.Logger
}

func newHandlers(app *app.App, l *logger.Logger) *handlers {
	return &handlers{app: app, log: l}
}

// loginHandler exchanges credentials for a token.
func (handlers *handlers) loginHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var credentials models.Credentials
	if !decodeBody(res, req, &credentials) {
		return
	}

	loginResponse, err := handlers.app.ProcessLogin(ctx, credentials)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingUsernameOrPassword):
			writeErrorResponse(res, msgMissingCredentials, http.StatusBadRequest)
		case errors.Is(err, app.ErrInvalidCredentials):
			writeErrorResponse(res, msgInvalidCredentials, http.StatusUnauthorized)
		default:
			handlers.internalError(res, "login", err)
		}
		return
	}

	writeJSON(res, loginResponse, http.StatusOK)
}

// signupHandler creates a regular account.
func (handlers *handlers) signupHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var signupRequest models.SignupRequest
	if !decodeBody(res, req, &signupRequest) {
		return
	}

	signupResponse, err := handlers.app.ProcessSignup(ctx, signupRequest)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingUsernameOrPassword):
			writeErrorResponse(res, msgMissingCredentials, http.StatusBadRequest)
		case errors.Is(err, app.ErrUsernameTaken):
			writeErrorResponse(res, msgUsernameTaken, http.StatusBadRequest)
		default:
			handlers.internalError(res, "signup", err)
		}
		return
	}

	writeJSON(res, signupResponse, http.StatusCreated)
}

func (handlers *handlers) profileHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := userFromRequest(res, req)
	if !ok {
		return
	}

	profile, err := handlers.app.ProcessProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			writeErrorResponse(res, msgNotFound, http.StatusNotFound)
			return
		}
		handlers.internalError(res, "profile", err)
		return
	}

	writeJSON(res, profile, http.StatusOK)
}

func (handlers *handlers) listAppsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	apps, err := handlers.app.ProcessListApps(ctx)
	if err != nil {
		handlers.internalError(res, "list apps", err)
		return
	}

	writeJSON(res, apps, http.StatusOK)
}

// addAppHandler adds a catalog entry. Only reachable through the staff middleware.
func (handlers *handlers) addAppHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var addAppRequest models.AddAppRequest
	if !decodeBody(res, req, &addAppRequest) {
		return
	}

	created, err := handlers.app.ProcessAddApp(ctx, addAppRequest)
	if err != nil {
		if errors.Is(err, app.ErrInvalidApp) {
			writeErrorResponse(res, err.Error(), http.StatusBadRequest)
			return
		}
		handlers.internalError(res, "add app", err)
		return
	}

	writeJSON(res, created, http.StatusCreated)
}

func (handlers *handlers) tasksHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := userFromRequest(res, req)
	if !ok {
		return
	}

	tasks, err := handlers.app.ProcessTasks(ctx, userID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			writeErrorResponse(res, msgNotFound, http.StatusNotFound)
			return
		}
		handlers.internalError(res, "list tasks", err)
		return
	}

	writeJSON(res, tasks, http.StatusOK)
}

// downloadHandler claims an app for the caller and credits its points.
func (handlers *handlers) downloadHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := userFromRequest(res, req)
	if !ok {
		return
	}

	var downloadRequest models.DownloadRequest
	if !decodeBody(res, req, &downloadRequest) {
		return
	}

	downloadResponse, err := handlers.app.ProcessDownload(ctx, userID, downloadRequest)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingAppID):
			writeErrorResponse(res, msgMissingAppID, http.StatusBadRequest)
		case errors.Is(err, app.ErrAppNotFound):
			writeErrorResponse(res, msgNotFound, http.StatusNotFound)
		case errors.Is(err, app.ErrAlreadyDownloaded):
			writeErrorResponse(res, msgAlreadyDownloaded, http.StatusBadRequest)
		default:
			handlers.internalError(res, "download", err)
		}
		return
	}

	writeJSON(res, downloadResponse, http.StatusOK)
}

// uploadHandler attaches the multipart "screenshot" file to a task of the caller.
func (handlers *handlers) uploadHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := userFromRequest(res, req)
	if !ok {
		return
	}

	taskID, err := strconv.Atoi(chi.URLParam(req, "taskID"))
	if err != nil || taskID <= 0 {
		writeErrorResponse(res, msgNotFound, http.StatusNotFound)
		return
	}

	req.Body = http.MaxBytesReader(res, req.Body, maxUploadSize)
	file, _, err := req.FormFile("screenshot")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(res, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		writeErrorResponse(res, msgNoScreenshot, http.StatusBadRequest)
		return
	}
	defer file.Close()

	uploadResponse, err := handlers.app.ProcessUpload(ctx, userID, taskID, file)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTaskNotFound):
			writeErrorResponse(res, msgNotFound, http.StatusNotFound)
		case errors.Is(err, app.ErrNoScreenshot):
			writeErrorResponse(res, msgNoScreenshot, http.StatusBadRequest)
		case errors.Is(err, app.ErrNotAnImage):
			writeErrorResponse(res, msgNotAnImage, http.StatusBadRequest)
		default:
			handlers.internalError(res, "upload", err)
		}
		return
	}

	writeJSON(res, uploadResponse, http.StatusOK)
}

func (handlers *handlers) internalError(res http.ResponseWriter, operation string, err error) {
	handlers.log.Sugar().Errorf("Failed to %s: %s", operation, err)
	writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
}

func userFromRequest(res http.ResponseWriter, req *http.Request) (int, bool) {
	userID, ok := auth.UserID(req.Context())
	if !ok || userID == 0 {
		writeErrorResponse(res, msgUnauthorized, http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func decodeBody(res http.ResponseWriter, req *http.Request, v any) bool {
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return false
	}
	if err = json.Unmarshal(requestBody, v); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(res http.ResponseWriter, v any, statusCode int) {
	result, err := json.Marshal(v)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	res.Write(result)
}

func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Error: errorInfo})
}
