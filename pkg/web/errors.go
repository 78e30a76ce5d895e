package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/gateway"
	"github.com/fluxon/flowlint/pkg/runtime"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleEngineError maps engine and gateway errors onto problem responses.
func handleEngineError(c fiber.Ctx, err error) error {
	switch {
	case catalog.IsStoreUnavailable(err):
		problem := problems.NewStatusProblem(503).
			WithInstance(c.Path()).
			WithType("catalog_unavailable").
			WithDetail("catalog backing store is unreachable")

		return c.Status(fiber.StatusServiceUnavailable).JSON(problem)

	case errors.Is(err, gateway.ErrNotValidated):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("not_validated").
			WithDetail("validate the document before persisting it")

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, gateway.ErrNotValid):
		// Surface the full issue list, not a generic rejection.
		var rejection *gateway.RejectionError
		if errors.As(err, &rejection) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"type":   "invalid_document",
				"detail": "document failed validation",
				"report": rejection.Report,
			})
		}

		problem := problems.NewStatusProblem(422).
			WithInstance(c.Path()).
			WithType("invalid_document").
			WithDetail(err.Error())

		return c.Status(fiber.StatusUnprocessableEntity).JSON(problem)

	case errors.Is(err, runtime.ErrWorkflowNotFound):
		return notFound(c, "workflow not found")

	case catalog.IsNotFound(err):
		return notFound(c, "node type not found")

	default:
		return internalError(c, err)
	}
}
