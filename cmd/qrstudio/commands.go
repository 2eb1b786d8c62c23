package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prasetyowira/qrstudio/api"
	"github.com/prasetyowira/qrstudio/cli"
	"github.com/prasetyowira/qrstudio/config"
	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/domain/studio"
	"github.com/prasetyowira/qrstudio/infrastructure/cache"
	"github.com/prasetyowira/qrstudio/infrastructure/db"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
)

type app struct {
	cfg *config.Config
	in  io.Reader
	out io.Writer
}

func (a *app) settings() studio.Settings {
	return studio.Settings{
		PreviewMax: a.cfg.Preview.Max,
		ErrorLevel: a.cfg.QR.ErrorLevel,
		BoxSize:    a.cfg.QR.BoxSize,
		Border:     a.cfg.QR.Border,
		FillColor:  a.cfg.QR.FillColor,
		Background: a.cfg.QR.Background,
	}
}

// openHistory returns nil when history is disabled.
func (a *app) openHistory() (*db.HistoryRepository, error) {
	if a.cfg.History.DBPath == "" {
		return nil, nil
	}

	repo, err := db.NewHistoryRepository(a.cfg.History.DBPath)
	if err != nil {
		appLogger.Error(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppDBInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataDBPath: a.cfg.History.DBPath,
			},
		})
		return nil, err
	}
	return repo, nil
}

func (a *app) service() *studio.Service {
	return studio.NewService(cache.NewNamespaceLRU[[]byte](a.cfg.Cache.Size))
}

// newStudio wires a studio to a shell front-end. The returned close func
// releases the history database.
func (a *app) newStudio(ctx context.Context) (*studio.Studio, *cli.Shell, func(), error) {
	repo, err := a.openHistory()
	if err != nil {
		return nil, nil, nil, err
	}

	var history studio.HistoryRepository
	closeFn := func() {}
	if repo != nil {
		history = repo
		closeFn = func() { repo.Close() }
	}

	bus := studio.NewEventBus()
	bus.Subscribe(cli.ConsoleSubscriber(a.out))
	bus.Subscribe(studio.LogSubscriber(ctx))

	shell := cli.NewShell(a.in, a.out)
	st, err := studio.NewStudio(a.settings(), bus, shell, a.service(), history)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	shell.Attach(st)

	return st, shell, closeFn, nil
}

func (a *app) shell(ctx context.Context) error {
	_, shell, closeFn, err := a.newStudio(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	// Unblock a pending read on interrupt
	if closer, ok := a.in.(io.Closer); ok {
		go func() {
			<-ctx.Done()
			closer.Close()
		}()
	}

	shell.Banner(a.cfg.App.Title, a.cfg.App.MinWidth, a.cfg.App.MinHeight)
	return shell.Run(ctx)
}

func (a *app) generate(ctx context.Context, text, output string) error {
	st, shell, closeFn, err := a.newStudio(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	st.SetInput(text)
	if err := shell.Execute(ctx, ":g"); err != nil {
		return err
	}
	if output == "" {
		return nil
	}
	return shell.Execute(ctx, ":s "+output)
}

func (a *app) history(ctx context.Context, limit int) error {
	repo, err := a.openHistory()
	if err != nil {
		return err
	}
	if repo == nil {
		return errors.New(constant.ErrHistoryDisabled)
	}
	defer repo.Close()

	exports, err := repo.Recent(ctx, limit)
	if err != nil {
		return err
	}

	for _, e := range exports {
		fmt.Fprintf(a.out, "%s  %s\n", e.CreatedAt.Format(time.DateTime), appLogger.FormatMetadata(map[string]interface{}{
			"id":     e.ID,
			"path":   e.Path,
			"format": e.Format,
			"ec":     e.ErrorLevel,
			"box":    e.BoxSize,
			"border": e.Border,
			"fill":   e.FillColor,
			"bg":     e.Background,
			"bytes":  e.Size,
			"text":   e.Data,
		}))
	}
	return nil
}

func (a *app) serve(ctx context.Context) error {
	repo, err := a.openHistory()
	if err != nil {
		return err
	}

	var lister api.HistoryLister
	if repo != nil {
		lister = repo
		defer repo.Close()
	}

	handler := api.NewHandler(a.service(), lister, a.settings())
	router := api.NewRouter(handler)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: a.cfg.Server.Port,
			},
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPort: a.cfg.Server.Port,
				},
			})
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		return err
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
	return nil
}
