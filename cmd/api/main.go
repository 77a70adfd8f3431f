package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/gestao-estoque/internal/application/auth"
	"github.com/jhoicas/gestao-estoque/internal/application/catalog"
	"github.com/jhoicas/gestao-estoque/internal/application/fetch"
	"github.com/jhoicas/gestao-estoque/internal/application/movement"
	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/application/report"
	"github.com/jhoicas/gestao-estoque/internal/application/user"
	infrapdf "github.com/jhoicas/gestao-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/gestao-estoque/internal/infrastructure/remoteapi"
	"github.com/jhoicas/gestao-estoque/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/gestao-estoque/internal/interfaces/http"
	"github.com/jhoicas/gestao-estoque/pkg/config"
	"github.com/jhoicas/gestao-estoque/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	secret := cfg.Session.Secret
	if secret == "" {
		if cfg.App.Env == "production" {
			log.Fatal().Msg("SESSION_SECRET obligatorio en producción")
		}
		// Sin secreto configurado las sesiones no sobreviven a un reinicio.
		secret = uuid.NewString()
		log.Warn().Msg("SESSION_SECRET vacío; usando secreto aleatorio")
	}

	ctx := context.Background()
	var store ports.SessionStore
	switch cfg.Session.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
	default:
		mem := session.NewMemoryStore()
		mem.OnExpire(func(id string) {
			log.Debug().Str("session_id", id).Msg("sesión expirada eliminada")
		})
		go mem.Start()
		defer mem.Stop()
		store = mem
	}
	log.Info().Str("store", cfg.Session.Store).Msg("almacén de sesiones")

	api := remoteapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log.Component("remoteapi"))

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.Local
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(loc)

	authUC := auth.NewAuthUseCase(api, store, auth.JWTConfig{
		Secret: secret,
		TTL:    cfg.Session.TTL,
		Issuer: cfg.Session.Issuer,
	}, log.Component("auth"))
	catalogUC := catalog.NewUseCase(api, catalog.Config{
		PageSize:   cfg.Catalog.PageSize,
		SupplierID: cfg.Catalog.SupplierID,
	}, log.Component("catalog"))
	movementUC := movement.NewUseCase(api, cfg.Catalog.PageSize, log.Component("movement"), nil)
	userUC := user.NewUseCase(api, cfg.Catalog.PageSize)
	reportUC := report.NewUseCase(api, catalogUC, movementUC, pdfGenerator, log.Component("report"), nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Upstream.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestão de Estoque BFF",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		MovementUC: movementUC,
		UserUC:     userUC,
		ReportUC:   reportUC,
		Tracker:    fetch.NewTracker(),
		Log:        log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
