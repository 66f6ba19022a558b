package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Duonganhdu2002/government-sub000/internal/app"
)

// @title        Government Applications API
// @version      1.0
// @description  Портал подачи заявлений: кэшируемые чтения, транзакционная
// @description  подача с вложениями, инвалидация кэша после коммита.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
