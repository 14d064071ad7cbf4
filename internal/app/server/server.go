// Package server собирает зависимости сервера и управляет его жизненным циклом.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/api"
	"healthsync/internal/app/server/config"
	"healthsync/internal/domain/device"
	"healthsync/internal/domain/request"
	"healthsync/internal/domain/response"
	"healthsync/internal/infrastructure/events"
	"healthsync/internal/infrastructure/push"
	"healthsync/internal/infrastructure/storage"
)

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	storage    *storage.Storage
	sender     push.Sender
	publisher  events.Publisher
	requests   *request.Service
	httpServer *http.Server
}

// New opens storage, the push transport and the event stream, then builds the
// HTTP server. Everything opened before a failure is closed again.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, log: log.With("component", "server")}
	defer func() {
		if err != nil {
			err = errors.Join(err, a.Close())
		}
	}()

	a.storage, err = storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a.sender, err = push.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init push transport: %w", err)
	}

	a.publisher, err = events.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init events: %w", err)
	}

	devices := device.NewService(a.storage.Devices, log)
	a.requests = request.NewService(a.storage.Requests, devices, a.sender, cfg.Push.Timeout, log)
	responses := response.NewService(a.storage.Responses, a.requests, a.publisher, log)

	mux := api.New(api.Services{
		Devices:    devices,
		Requests:   a.requests,
		Responses:  responses,
		Resolver:   response.NewResolver(a.storage.Responses),
		Store:      a.storage,
		TargetDate: cfg.Analytics.TargetDate,
	}, log)

	a.httpServer = &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}
	return a, nil
}

// Handler отдает роутер без запуска сервера
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run serves HTTP until ctx is cancelled, then shuts down within SHUTDOWN_TIMEOUT.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting http server", "address", a.cfg.Server.RunAddress, "env", a.cfg.Env)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if ttl := a.cfg.Lifecycle.RequestTTL; ttl > 0 {
		go Sweep(sweepCtx, a.requests, ttl, a.cfg.Lifecycle.SweepInterval, a.log)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down http server", "timeout", a.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Close releases external connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.sender != nil {
		errs = append(errs, a.sender.Close())
	}
	if a.storage != nil {
		errs = append(errs, a.storage.Close())
	}
	return errors.Join(errs...)
}
