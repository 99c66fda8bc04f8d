package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// InventoryFilter filtros opcionales para listar inventario; vacío = sin filtro.
type InventoryFilter struct {
	Site      string
	PartID    string
	Condition entity.Condition
	Limit     int
	Offset    int
}

// InventoryRecordRepository define el puerto para las existencias por (sede, repuesto, condición).
// Solo suma; nunca descuenta.
type InventoryRecordRepository interface {
	Get(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error)
	// LockSitePart serializa, dentro de la transacción, las escrituras sobre el par (sede, repuesto).
	LockSitePart(ctx context.Context, sp entity.SitePart) error
	// KnownLocation devuelve la ubicación registrada del par en cualquier condición, o "".
	KnownLocation(ctx context.Context, sp entity.SitePart) (string, error)
	// AddQuantity crea el registro con delta o suma delta al existente; la ubicación
	// solo se escribe si la actual es nula.
	AddQuantity(ctx context.Context, key entity.InventoryKey, delta int, location string) (*entity.InventoryRecord, error)
	List(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryRecord, error)
}
