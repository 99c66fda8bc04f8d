package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/receiving"
)

// ReceiptHandler maneja las recepciones de mercancía (protegido).
type ReceiptHandler struct {
	uc  *receiving.ReceivingUseCase
	log zerolog.Logger
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *receiving.ReceivingUseCase, log zerolog.Logger) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, log: log}
}

// Post godoc
// @Summary      Registrar recepción sobre un pedido
// @Description  Todo o nada: si una línea falla no se registra nada. La ubicación solo se usa en la primera recepción del repuesto en la sede.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID del pedido"
// @Param        body  body      dto.PostReceiptRequest  true  "site, lines[order_item_id, qty, condition, location]"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipts [post]
func (h *ReceiptHandler) Post(c *fiber.Ctx) error {
	var in dto.PostReceiptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.PostReceipt(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByOrder godoc
// @Summary      Recepciones de un pedido
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.ReceiptListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipts [get]
func (h *ReceiptHandler) ListByOrder(c *fiber.Ctx) error {
	out, err := h.uc.ListReceipts(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener recepción
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Acta de recepción en PDF
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      string  true  "ID de la recepción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) GetPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ReceiptNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
