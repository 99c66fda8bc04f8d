package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
)

// InventoryHandler consultas de existencias (protegido). Las escrituras solo ocurren vía recepciones.
type InventoryHandler struct {
	uc  *inventory.InventoryUseCase
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Existencias por sede, repuesto y condición
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        site       query  string  false  "Nombre de la sede"
// @Param        part_id    query  string  false  "ID del repuesto"
// @Param        condition  query  string  false  "new | refurbished | used"
// @Param        limit      query  int     false  "Máximo 100"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// KnownLocation godoc
// @Summary      Ubicación fija de un repuesto en una sede
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        site     query  string  true  "Nombre de la sede"
// @Param        part_id  query  string  true  "ID del repuesto"
// @Success      200  {object}  dto.KnownLocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/location [get]
func (h *InventoryHandler) KnownLocation(c *fiber.Ctx) error {
	out, err := h.uc.KnownLocation(c.UserContext(), c.Query("site"), c.Query("part_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
