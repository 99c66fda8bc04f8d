package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store struct {
	Orders       OrderRepository
	OrderItems   OrderItemRepository
	Receipts     ReceiptRepository
	Inventory    InventoryRecordRepository
	PendingRefs  PendingRefRepository
	Parts        PartRepository
	Suppliers    SupplierRepository
	Sites        SiteRepository
	SupplierRefs SupplierPartRefRepository
}
