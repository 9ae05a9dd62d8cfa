package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appdownloader/internal/app"
	"appdownloader/internal/config"
	"appdownloader/internal/media"
	"appdownloader/internal/pkg/logger"
	"appdownloader/internal/service"
	"appdownloader/internal/storage"
)

func main() {
	var l *logger.Logger
	var err error
	if l, err = logger.CreateLogger(config.LogLevel); err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	storage, err := storage.NewPostgreSQL(config.DatabaseURI, l)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	const setupTimeout = 30 * time.Second
	setupCtx, cancelSetup := context.WithTimeout(context.Background(), setupTimeout)
	defer cancelSetup()
	if err := storage.Migrate(setupCtx); err != nil {
		log.Fatal(err)
	}

	files, err := media.NewStore(config.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	app := app.NewApp(storage, files, l)
	if config.StaffUsername != "" {
		if err := app.SeedStaff(setupCtx, config.StaffUsername, config.StaffPassword); err != nil {
			log.Fatal(err)
		}
	}
	service := service.NewService(app, files.Handler(), config.ServerRunAddress, l)

	const readHeaderTimeout = 5 * time.Second
	server := &http.Server{Addr: service.RunAddress(), Handler: service.NewRouter(), ReadHeaderTimeout: readHeaderTimeout}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		const shutdownTimeout = 30 * time.Second
		shutdownCtx, cancel := context.WithTimeout(serverCtx, shutdownTimeout)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	l.Sugar().Infof("Listening on %s", service.RunAddress())
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	<-serverCtx.Done()
}
