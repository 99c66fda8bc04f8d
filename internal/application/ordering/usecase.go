package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// OrderUseCase casos de uso del libro de pedidos: creación, líneas y transiciones de usuario.
// Las transiciones derivadas (partially_received, received) solo las aplica RecomputeStatusInTx.
type OrderUseCase struct {
	store           repository.Store
	txRunner        TxRunner
	pending         PendingRaiser
	defaultCurrency string
	log             zerolog.Logger
	now             func() time.Time
}

// NewOrderUseCase construye el caso de uso. store se usa para lecturas fuera de transacción.
func NewOrderUseCase(store repository.Store, txRunner TxRunner, pending PendingRaiser, defaultCurrency string, log zerolog.Logger) *OrderUseCase {
	if defaultCurrency == "" {
		defaultCurrency = "COP"
	}
	return &OrderUseCase{
		store:           store,
		txRunner:        txRunner,
		pending:         pending,
		defaultCurrency: strings.ToUpper(defaultCurrency),
		log:             log,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder crea un pedido en borrador para un proveedor y una sede existentes.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	supplierID := strings.TrimSpace(in.SupplierID)
	site := strings.TrimSpace(in.Site)
	if supplierID == "" || site == "" {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Order
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		sup, err := tx.Suppliers.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return fmt.Errorf("proveedor %s: %w", supplierID, domain.ErrNotFound)
		}
		st, err := tx.Sites.GetByName(ctx, site)
		if err != nil {
			return err
		}
		if st == nil {
			return fmt.Errorf("sede %q: %w", site, domain.ErrNotFound)
		}
		order, err := entity.NewOrder(uuid.New().String(), supplierID, st.Name, strings.TrimSpace(in.ExternalRef), userID, uc.now())
		if err != nil {
			return err
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", created.ID).Str("site", created.Site).Msg("pedido creado")
	return toOrderResponse(created, nil, nil, nil), nil
}

// AddItem agrega una línea a un pedido en borrador. Si no se puede resolver el repuesto y se indicó
// referencia de proveedor, la línea queda sin repuesto y se abre la referencia pendiente en la misma tx.
func (uc *OrderUseCase) AddItem(ctx context.Context, userID, orderID string, in dto.AddOrderItemRequest) (*dto.OrderItemResponse, error) {
	if !entity.ValidQty(in.Qty) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitPrice != nil && in.UnitPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("precio unitario negativo: %w", domain.ErrInvalidInput)
	}
	partID := strings.TrimSpace(in.PartID)
	sku := strings.TrimSpace(in.SKU)
	supplierRef := strings.TrimSpace(in.SupplierRef)
	if partID == "" && sku == "" && supplierRef == "" {
		return nil, fmt.Errorf("se requiere part_id, sku o supplier_ref: %w", domain.ErrInvalidInput)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = uc.defaultCurrency
	}

	var (
		item    *entity.OrderItem
		pending *entity.PendingRef
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		order, err := tx.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
		}
		if !order.IsEditable() {
			return domain.ErrOrderNotEditable
		}
		resolved, err := resolvePart(ctx, tx, order.SupplierID, partID, sku, supplierRef)
		if err != nil {
			return err
		}
		now := uc.now()
		item = &entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			PartID:      resolved,
			SupplierRef: supplierRef,
			Qty:         in.Qty,
			UnitPrice:   in.UnitPrice,
			Currency:    currency,
			CreatedAt:   now,
		}
		if resolved == nil {
			pending, _, err = uc.pending.RaisePendingInTx(ctx, tx, entity.PendingRef{
				SupplierID:  order.SupplierID,
				SupplierRef: supplierRef,
				CreatedBy:   userID,
			})
			if err != nil {
				return err
			}
		}
		return tx.OrderItems.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	ev := uc.log.Info().Str("order_id", orderID).Str("item_id", item.ID).Int("qty", item.Qty)
	if pending != nil {
		ev = ev.Str("pending_ref_id", pending.ID)
	}
	ev.Msg("línea agregada")
	out := toOrderItemResponse(item, 0)
	if pending != nil {
		out.PendingRefID = pending.ID
	}
	return &out, nil
}

// resolvePart aplica el orden part_id → sku → referencia canónica del proveedor.
// Devuelve nil si solo hay una referencia no reconocida.
func resolvePart(ctx context.Context, tx repository.Store, supplierID, partID, sku, supplierRef string) (*string, error) {
	if partID != "" {
		p, err := tx.Parts.GetByID(ctx, partID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("repuesto %s: %w", partID, domain.ErrNotFound)
		}
		return &p.ID, nil
	}
	if sku != "" {
		p, err := tx.Parts.GetBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("sku %q: %w", sku, domain.ErrNotFound)
		}
		return &p.ID, nil
	}
	ref, err := tx.SupplierRefs.GetBySupplierRef(ctx, supplierID, supplierRef)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}
	return &ref.PartID, nil
}

// MarkOrdered pasa el pedido de draft a ordered (requiere al menos una línea).
func (uc *OrderUseCase) MarkOrdered(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		var err error
		order, err = tx.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
		}
		items, err := tx.OrderItems.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if err := order.MarkOrdered(len(items), uc.now()); err != nil {
			return err
		}
		return tx.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Msg("pedido enviado al proveedor")
	return toOrderResponse(order, nil, nil, nil), nil
}

// Cancel cancela el pedido desde cualquier estado no terminal.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		var err error
		order, err = tx.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
		}
		if err := order.Cancel(uc.now()); err != nil {
			return err
		}
		return tx.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Msg("pedido cancelado")
	return toOrderResponse(order, nil, nil, nil), nil
}

// GetOrder devuelve el pedido con sus líneas y avance de recepción.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.store.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, received, err := uc.itemsWithProgress(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	pendingIDs := uc.pendingIDs(ctx, order.SupplierID, items)
	return toOrderResponse(order, items, received, pendingIDs), nil
}

// ListOrderItems devuelve las líneas del pedido con lo recibido y lo pendiente.
func (uc *OrderUseCase) ListOrderItems(ctx context.Context, orderID string) (*dto.OrderItemListResponse, error) {
	order, err := uc.store.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, received, err := uc.itemsWithProgress(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order, items, received, uc.pendingIDs(ctx, order.SupplierID, items))
	if resp.Items == nil {
		resp.Items = []dto.OrderItemResponse{}
	}
	return &dto.OrderItemListResponse{OrderID: order.ID, Status: string(order.Status), Items: resp.Items}, nil
}

// RemainingFor devuelve max(qty - recibido, 0) de una línea. Es una lectura orientativa:
// PostReceipt la vuelve a validar bajo bloqueo.
func (uc *OrderUseCase) RemainingFor(ctx context.Context, itemID string) (*dto.RemainingResponse, error) {
	item, err := uc.store.OrderItems.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	received, err := uc.store.Receipts.SumReceivedByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return &dto.RemainingResponse{
		OrderItemID: item.ID,
		Ordered:     item.Qty,
		Received:    received,
		Remaining:   item.Remaining(received),
	}, nil
}

func (uc *OrderUseCase) itemsWithProgress(ctx context.Context, orderID string) ([]*entity.OrderItem, map[string]int, error) {
	items, err := uc.store.OrderItems.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	received, err := uc.store.Receipts.SumReceivedByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return items, received, nil
}

// pendingIDs busca la referencia pendiente de cada línea sin repuesto. Un fallo aquí solo
// deja el campo vacío en la respuesta.
func (uc *OrderUseCase) pendingIDs(ctx context.Context, supplierID string, items []*entity.OrderItem) map[string]string {
	out := make(map[string]string)
	for _, it := range items {
		if it.IsResolved() || it.SupplierRef == "" {
			continue
		}
		if _, ok := out[it.SupplierRef]; ok {
			continue
		}
		p, err := uc.store.PendingRefs.GetBySupplierRef(ctx, supplierID, it.SupplierRef)
		if err != nil {
			uc.log.Warn().Err(err).Str("supplier_ref", it.SupplierRef).Msg("no se pudo consultar la referencia pendiente")
			continue
		}
		if p != nil {
			out[it.SupplierRef] = p.ID
		}
	}
	return out
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem, received map[string]int, pendingIDs map[string]string) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		SupplierID:  o.SupplierID,
		Site:        o.Site,
		Status:      string(o.Status),
		ExternalRef: o.ExternalRef,
		OrderedAt:   o.OrderedAt,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if items != nil {
		resp.Items = make([]dto.OrderItemResponse, 0, len(items))
		for _, it := range items {
			r := toOrderItemResponse(it, received[it.ID])
			if !it.IsResolved() {
				r.PendingRefID = pendingIDs[it.SupplierRef]
			}
			resp.Items = append(resp.Items, r)
		}
	}
	return resp
}

func toOrderItemResponse(it *entity.OrderItem, received int) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		ID:          it.ID,
		OrderID:     it.OrderID,
		PartID:      it.PartID,
		SupplierRef: it.SupplierRef,
		Qty:         it.Qty,
		Received:    received,
		Remaining:   it.Remaining(received),
		UnitPrice:   it.UnitPrice,
		Currency:    it.Currency,
		CreatedAt:   it.CreatedAt,
	}
}
