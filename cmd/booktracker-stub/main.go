package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booktracker/internal/config"
	"booktracker/internal/logging"
	"booktracker/internal/stubserver"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	log := logging.New("info")
	if err != nil {
		log.WithError(err).Fatal("cannot load config")
	}
	log = logging.New(cfg.LogLevel)

	store := stubserver.NewStore()
	store.Seed(stubserver.DemoData())

	httpServer := &http.Server{
		Handler:      stubserver.New(store, cfg.Stub.DefaultUserID, log).Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", cfg.Stub.Addr)
	if err != nil {
		log.WithError(err).Fatal("cannot listen")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("addr", listener.Addr().String()).Info("starting stub server")
	if err := serve(ctx, httpServer, listener, log); err != nil {
		log.WithError(err).Fatal("server error")
	}
	log.Info("stub server stopped")
}

// serve runs the server until ctx is done, then returns only after in-flight
// requests have drained or the shutdown timeout has passed.
func serve(ctx context.Context, httpServer *http.Server, listener net.Listener, log logrus.FieldLogger) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
