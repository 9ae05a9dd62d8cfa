package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"appdownloader/internal/api"
	"appdownloader/internal/config"
	"appdownloader/internal/controller"
	"appdownloader/internal/pkg/logger"
	"appdownloader/internal/session"
	"appdownloader/internal/terminal"
)

func main() {
	serverURL := flag.String("server", config.BaseURL, "base URL of the remote service")
	sessionPath := flag.String("session", config.SessionPath, "path of the session database")
	ephemeral := flag.Bool("ephemeral", false, "keep the session in memory only")
	flag.Parse()

	l, err := logger.CreateLogger(config.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	if err := run(l, *serverURL, *sessionPath, *ephemeral); err != nil {
		l.Sugar().Errorf("Client stopped: %s", err)
		l.Sync()
		os.Exit(1)
	}
	l.Sync()
}

// run wires the client and drives the shell until it exits or a signal arrives.
// Deferred cleanup runs before the error reaches main.
func run(l *logger.Logger, serverURL, sessionPath string, ephemeral bool) error {
	httpClient := &http.Client{Timeout: config.RequestTimeout, Transport: l.Transport(nil)}
	remote, err := api.NewClient(serverURL, httpClient)
	if err != nil {
		return err
	}

	var store session.Store
	if ephemeral {
		store = session.NewMemoryStore()
	} else {
		boltStore, err := session.OpenBolt(sessionPath)
		if err != nil {
			return err
		}
		defer boltStore.Close()
		store = boltStore
	}

	console := terminal.NewConsole(os.Stdin, os.Stdout)
	ctrl := controller.New(remote, store, terminal.NewRenderer(os.Stdout), terminal.NewPathPicker(console), l)
	shell := terminal.NewShell(ctrl, console, l)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ctrl.RestoreSession(ctx); err != nil {
		if errors.Is(err, controller.ErrSessionRejected) {
			fmt.Println("Your session has expired. Please login again.")
		} else {
			l.Sugar().Errorf("Failed to restore session: %s", err)
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- shell.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return nil
	}
}
