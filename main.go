package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"synth/app/client/gateway"
	"synth/app/config"
	"synth/app/provider"
	"synth/app/server"
	"synth/app/service/fallback"
	"synth/app/service/project"
	"synth/app/service/resolver"
	"synth/app/service/session"
	"synth/app/store"
	"synth/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, store.New)
	do.Provide(di, session.New)
	do.Provide(di, fallback.New)
	do.Provide(di, gateway.NewClient)
	do.Provide(di, resolver.New)
	do.Provide(di, project.New)
	do.Provide(di, provider.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	srv := do.MustInvoke[*server.Server](di)
	if err := srv.Run(appCtx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
