package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PartRepository lectura del catálogo de repuestos.
type PartRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Part, error)
}

// SupplierRepository lectura de proveedores.
type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}

// SiteRepository lectura de sedes (por nombre, que es la clave usada en pedidos e inventario).
type SiteRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Site, error)
}

// SupplierPartRefRepository referencias canónicas proveedor -> repuesto.
type SupplierPartRefRepository interface {
	GetBySupplierRef(ctx context.Context, supplierID, supplierRef string) (*entity.SupplierPartRef, error)
	Create(ctx context.Context, ref *entity.SupplierPartRef) error
}
