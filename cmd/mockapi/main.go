// Comando mockapi levanta la API de inventario simulada para desarrollo local.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/middleware/recover"

	httpRouter "github.com/jhoicas/gestao-estoque/internal/interfaces/http"
	"github.com/jhoicas/gestao-estoque/internal/mockapi"
	"github.com/jhoicas/gestao-estoque/pkg/config"
	"github.com/jhoicas/gestao-estoque/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "mockapi"})

	store, err := mockapi.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar datos")
	}
	app := mockapi.New(store, mockapi.Config{
		Secret: "mockapi-" + cfg.App.Env,
		Shape:  cfg.MockAPI.Shape,
	}, log.Component("mockapi"), recover.New(), httpRouter.RequestLogger(log.Component("http")))

	addr := fmt.Sprintf(":%d", cfg.MockAPI.Port)
	log.Info().
		Str("addr", addr).
		Str("shape", cfg.MockAPI.Shape).
		Str("matricula", "1001").
		Str("senha", mockapi.SeedPassword).
		Msg("API simulada lista")

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	_ = app.Shutdown()
}
