package main

import (
	"context"

	"github.com/rgjamkhedkar/passport-token-google/internal/access"
	"github.com/rgjamkhedkar/passport-token-google/internal/config"
	"github.com/rgjamkhedkar/passport-token-google/internal/logger"
	"github.com/rgjamkhedkar/passport-token-google/internal/server"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	config.InitFlags()
	pflag.Parse()

	app := fx.New(
		fx.NopLogger,
		fx.Provide(config.Load),
		access.Module,
		server.Module,
		fx.Invoke(initLogger),
		fx.Invoke(runServer),
	)

	app.Run()
}

func initLogger(cfg *config.Config) error {
	return logger.Init(&cfg.Logging)
}

func runServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *server.Server) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := srv.Start(ctx); err != nil {
					logger.Error("Server exited", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			_ = logger.Sync()
			return nil
		},
	})
}
