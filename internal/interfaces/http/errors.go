package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// retryAfterSeconds valor del header Retry-After en respuestas 503 por contención.
const retryAfterSeconds = "1"

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los errores más específicos primero (PartUnresolved envuelve NotFound).
var errorMappings = []errorMapping{
	{domain.ErrContention, fiber.StatusServiceUnavailable, "CONTENTION"},
	{domain.ErrOverReceipt, fiber.StatusConflict, "OVER_RECEIPT"},
	{domain.ErrLocationRequired, fiber.StatusUnprocessableEntity, "LOCATION_REQUIRED"},
	{domain.ErrPartUnresolved, fiber.StatusNotFound, "PART_UNRESOLVED"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmptyOrder, fiber.StatusConflict, "EMPTY_ORDER"},
	{domain.ErrOrderNotEditable, fiber.StatusConflict, "ORDER_NOT_EDITABLE"},
	{domain.ErrOrderNotReceivable, fiber.StatusConflict, "ORDER_NOT_RECEIVABLE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError traduce un error de dominio al status HTTP y cuerpo dto.ErrorResponse.
// Los errores no mapeados se registran y salen como 500.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		body := dto.ErrorResponse{Code: m.code, Message: err.Error(), Details: errorDetails(err)}
		if m.status == fiber.StatusServiceUnavailable {
			c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
			log.Warn().Err(err).Str("path", c.Path()).Msg("contención en la base de datos")
		}
		return c.Status(m.status).JSON(body)
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func errorDetails(err error) map[string]any {
	details := map[string]any{}
	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		details["line"] = lineErr.Index
		if lineErr.OrderItemID != "" {
			details["order_item_id"] = lineErr.OrderItemID
		}
	}
	var over *domain.OverReceiptError
	if errors.As(err, &over) {
		details["order_item_id"] = over.OrderItemID
		details["requested"] = over.Requested
		details["remaining"] = over.Remaining
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// ErrorHandler maneja los errores que llegan a Fiber sin pasar por respondError
// (rutas inexistentes, cuerpos demasiado grandes, panics recuperados).
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			if fe.Code == fiber.StatusNotFound {
				code = "ROUTE_NOT_FOUND"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return respondError(c, log, err)
	}
}
