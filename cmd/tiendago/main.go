package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tiendalabs/tiendago/config"
	"github.com/tiendalabs/tiendago/internal/api"
	"github.com/tiendalabs/tiendago/internal/app"
	"github.com/tiendalabs/tiendago/internal/webserver"
)

var (
	conffile = flag.String("c", "tiendago.yml", "config file")
	port     = flag.Int("p", 0, "listen port override")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)
	if *port > 0 {
		cfg.Web.Port = *port
	}
	_ = os.MkdirAll(cfg.System.Workdir, 0o755)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	srv := webserver.Init(application)
	api.Register(srv, application)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
