// Package main provides the Flowlint API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/gateway"
	"github.com/fluxon/flowlint/pkg/policy"
	"github.com/fluxon/flowlint/pkg/resolver"
	"github.com/fluxon/flowlint/pkg/runtime"
	"github.com/fluxon/flowlint/pkg/validation"
	"github.com/fluxon/flowlint/pkg/web"
)

type API struct {
	logger   *slog.Logger
	store    catalog.Store
	mode     policy.Mode
	runtime  *runtime.Client
	tracer   trace.Tracer
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	store catalog.Store,
	mode policy.Mode,
	runtimeClient *runtime.Client,
	tracer trace.Tracer,
) *API {
	return &API{
		logger:   logger,
		store:    store,
		mode:     mode,
		runtime:  runtimeClient,
		tracer:   tracer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	cat := catalog.New(a.store, a.logger)
	res := resolver.New(cat, a.logger)

	engine := validation.NewEngine(res, policy.New(a.mode), a.logger)
	if a.tracer != nil {
		engine = engine.WithTracer(a.tracer)
	}

	gw := gateway.New(engine.Cache(), a.runtime, a.logger)

	handlers := web.NewAPIHandlers(engine, cat, gw, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Flowlint API")
	})

	v := app.Group("/validate")
	v.Post("/", handlers.ValidateWorkflow)
	v.Post("/check", handlers.CheckWorkflow)

	n := app.Group("/node-types")
	n.Get("/", handlers.SearchNodeTypes)
	n.Get("/:type", handlers.GetNodeType)

	w := app.Group("/workflows")
	w.Post("/", handlers.CreateWorkflow)
	w.Put("/:id", handlers.UpdateWorkflow)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
