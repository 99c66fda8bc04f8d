package postgres

import "github.com/jhoicas/Repuestos-api/internal/domain/repository"

// NewStore ata todos los repositorios al mismo Querier (pool o tx).
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Orders:       NewOrderRepository(q),
		OrderItems:   NewOrderItemRepository(q),
		Receipts:     NewReceiptRepository(q),
		Inventory:    NewInventoryRecordRepository(q),
		PendingRefs:  NewPendingRefRepository(q),
		Parts:        NewPartRepository(q),
		Suppliers:    NewSupplierRepository(q),
		Sites:        NewSiteRepository(q),
		SupplierRefs: NewSupplierPartRefRepository(q),
	}
}
