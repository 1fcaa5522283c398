package main

import (
	"context"
	"errors"
	"github.com/ZilDuck/nft-test-market/internal/config"
	"github.com/ZilDuck/nft-test-market/internal/dic"
	"go.uber.org/zap"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.Init("marketd")

	container, err := dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	defer container.Delete()

	market, err := container.SafeGetMarket()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to create market")
	}

	server, err := container.SafeGetWebServer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to create web server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := market.Mount(ctx); err != nil {
			zap.L().With(zap.Error(err)).Warn("Market mounted with errors")
		}
	}()

	addr := net.JoinHostPort(config.Get().HttpHost, config.Get().HttpPort)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		zap.L().With(zap.String("collection", market.Collection())).Info("Serving market on " + addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().With(zap.Error(err)).Fatal("Failed to start market server")
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Get().ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zap.L().With(zap.Error(err)).Error("Market server shutdown failed")
		return
	}
	zap.L().Info("Market server stopped")
}
