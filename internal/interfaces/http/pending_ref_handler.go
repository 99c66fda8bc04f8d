package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/resolution"
)

// PendingRefHandler cola de referencias de proveedor sin repuesto conocido.
type PendingRefHandler struct {
	uc  *resolution.ResolutionUseCase
	log zerolog.Logger
}

// NewPendingRefHandler construye el handler.
func NewPendingRefHandler(uc *resolution.ResolutionUseCase, log zerolog.Logger) *PendingRefHandler {
	return &PendingRefHandler{uc: uc, log: log}
}

// Raise godoc
// @Summary      Registrar referencia pendiente
// @Description  Si ya hay una pendiente para (proveedor, referencia) se devuelve esa con created=false.
// @Tags         pending-refs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RaisePendingRequest  true  "supplier_id, supplier_ref, product_url, note"
// @Success      201   {object}  dto.PendingRefResponse
// @Success      200   {object}  dto.PendingRefResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pending-refs [post]
func (h *PendingRefHandler) Raise(c *fiber.Ctx) error {
	var in dto.RaisePendingRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RaisePending(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// List godoc
// @Summary      Listar referencias pendientes
// @Tags         pending-refs
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        limit        query  int     false  "Máximo 100"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.PendingRefListResponse
// @Router       /api/pending-refs [get]
func (h *PendingRefHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), c.Query("supplier_id"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener referencia pendiente
// @Tags         pending-refs
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la referencia pendiente"
// @Success      200  {object}  dto.PendingRefResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pending-refs/{id} [get]
func (h *PendingRefHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar referencia pendiente (admin)
// @Description  Crea la referencia canónica, elimina la pendiente y re-enlaza las líneas huérfanas.
// @Tags         pending-refs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la referencia pendiente"
// @Param        body  body      dto.ApprovePendingRequest  true  "part_id | sku, product_url"
// @Success      200   {object}  dto.ApprovePendingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pending-refs/{id}/approve [post]
func (h *PendingRefHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApprovePendingRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar referencia pendiente (admin)
// @Tags         pending-refs
// @Security     Bearer
// @Param        id   path  string  true  "ID de la referencia pendiente"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pending-refs/{id}/reject [post]
func (h *PendingRefHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.Reject(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
