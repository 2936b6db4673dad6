// Command sunflower runs the gallery mirroring daemon: it periodically
// diffs a remote gallery index against a Postgres relational store and a
// Redis document store, fetches and repairs what's missing or
// inconsistent, and exposes its status over HTTP.
package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	sglog "github.com/sourcegraph/log"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/saebasol/sunflower/internal/config"
	"github.com/saebasol/sunflower/internal/httpapi"
	"github.com/saebasol/sunflower/internal/mirror"
	"github.com/saebasol/sunflower/internal/profiler"
	"github.com/saebasol/sunflower/internal/remote"
	"github.com/saebasol/sunflower/internal/storage/postgres"
	"github.com/saebasol/sunflower/internal/storage/redisdoc"
	"github.com/saebasol/sunflower/internal/tasks"
)

const version = "0.1.0"

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(log.Printf)); err != nil {
		log.Printf("automaxprocs: %v", err)
	}

	liblog := sglog.Init(sglog.Resource{Name: "sunflower", Version: version})
	defer liblog.Sync()
	logger := sglog.Scoped("main", "daemon entrypoint")
	profiler.Init("sunflower", version)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatal("config", sglog.Error(err))
	}

	remoteRoot, err := url.Parse(cfg.RemoteRoot)
	if err != nil {
		logger.Fatal("invalid remote root", sglog.Error(err))
	}
	remoteClient := remote.New(remoteRoot, cfg.Mirror.IndexFiles)

	relational, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("postgres", sglog.Error(err))
	}
	if err := relational.Migrate(); err != nil {
		logger.Fatal("postgres migrate", sglog.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	document := redisdoc.New(rdb)

	engine := mirror.New(remoteClient, relational, document, cfg.Mirror)

	ctx, cancel := context.WithCancel(context.Background())
	mgr := tasks.New(ctx)

	if !cfg.DisableMirroring {
		mgr.Register("mirror", engine.RunMirror)
	}
	if !cfg.DisableIntegrityCheck && !cfg.DisableIntegrityPartialCheck {
		mgr.Register("integrity-partial", engine.RunPartialIntegrityCheck)
	}
	if !cfg.DisableIntegrityCheck && !cfg.DisableIntegrityFullCheck {
		mgr.Register("integrity-full", engine.RunFullIntegrityCheck)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.NewMux(engine, true),
	}
	go func() {
		logger.Info("starting http server", sglog.String("address", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", sglog.Error(err))
		}
	}()

	shutdownOnSignal()
	cancel()
	_ = srv.Close()
	if err := mgr.Stop(); err != nil {
		logger.Error("task manager stop", sglog.Error(err))
	}
}

// shutdownOnSignal blocks until SIGINT or SIGTERM is received.
func shutdownOnSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
