package service

import (
	"net/http"

	"appdownloader/internal/app"
	"appdownloader/internal/media"
	"appdownloader/internal/pkg/auth"
	"appdownloader/internal/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Service holds the handlers and the uploaded-file handler behind the router.
type Service struct {
	handlers   *handlers
	app        *app.App
	files      http.Handler
	runAddress string
	log        *logger.Logger
}

// NewService creates a Service. files serves stored screenshots under media.URLPrefix and may be nil.
func NewService(app *app.App, files http.Handler, runAddress string, l *logger.Logger) *Service {
	handlers := newHandlers(app, l)
	return &Service{handlers: handlers, app: app, files: files, runAddress: runAddress, log: l}
}

// RunAddress returns the address the service is configured to listen on.
func (service *Service) RunAddress() string {
	return service.runAddress
}

// NewRouter returns the router with request logging on every route, token authentication on
// everything but login and signup, and the staff check on add_android_app.
func (service *Service) NewRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(service.log.WithLogging())
	router.Post("/login/", service.handlers.loginHandler)
	router.Post("/signup/", service.handlers.signupHandler)
	if service.files != nil {
		router.Handle(media.URLPrefix+"*", service.files)
	}
	router.Group(func(r chi.Router) {
		r.Use(auth.CheckTokenMiddleware())
		r.Get("/get_user_profile/", service.handlers.profileHandler)
		r.Get("/get_android_apps/", service.handlers.listAppsHandler)
		r.Get("/get_user_tasks/", service.handlers.tasksHandler)
		r.Post("/download_app/", service.handlers.downloadHandler)
		r.Post("/upload_screenshot/{taskID}/", service.handlers.uploadHandler)
		r.With(auth.RequireStaff).Post("/add_android_app/", service.handlers.addAppHandler)
	})
	return router
}
