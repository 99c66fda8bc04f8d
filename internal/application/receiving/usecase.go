package receiving

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ordering"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	domainrcv "github.com/jhoicas/Repuestos-api/internal/domain/receiving"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// ReceivingUseCase registra recepciones contra las líneas de un pedido y alimenta el inventario.
// Recepción, líneas, existencias y estado del pedido se escriben en una sola transacción.
type ReceivingUseCase struct {
	store    repository.Store
	txRunner TxRunner
	ledger   InventoryLedger
	notes    ReceiptNoteGenerator
	log      zerolog.Logger
	now      func() time.Time
}

// NewReceivingUseCase construye el caso de uso inyectando sus dependencias.
func NewReceivingUseCase(
	store repository.Store,
	txRunner TxRunner,
	ledger InventoryLedger,
	notes ReceiptNoteGenerator,
	log zerolog.Logger,
) *ReceivingUseCase {
	return &ReceivingUseCase{
		store:    store,
		txRunner: txRunner,
		ledger:   ledger,
		notes:    notes,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type receiptLine struct {
	index     int
	item      *entity.OrderItem
	qty       int
	condition entity.Condition
	location  string
}

func (l receiptLine) sitePart(site string) entity.SitePart {
	return entity.SitePart{Site: site, PartID: *l.item.PartID}
}

// PostReceipt registra una recepción sobre el pedido. Valida todas las líneas bajo bloqueo
// (pedido, líneas del pedido y cada par sede/repuesto) antes de escribir; cualquier fallo
// revierte el lote completo.
func (uc *ReceivingUseCase) PostReceipt(ctx context.Context, userID, orderID string, in dto.PostReceiptRequest) (*dto.ReceiptResponse, error) {
	site := strings.TrimSpace(in.Site)
	if site == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Validación de forma, sin tocar la BD.
	conds := make([]entity.Condition, len(in.Lines))
	for i, l := range in.Lines {
		if l.Qty <= 0 {
			return nil, &domain.LineError{Index: i, OrderItemID: l.OrderItemID, Err: domain.ErrInvalidQuantity}
		}
		c, err := entity.ParseCondition(strings.TrimSpace(l.Condition))
		if err != nil {
			return nil, &domain.LineError{Index: i, OrderItemID: l.OrderItemID, Err: err}
		}
		conds[i] = c
	}

	var (
		receipt *entity.Receipt
		order   *entity.Order
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		var err error
		// ── 1. Pedido bloqueado y recibible ───────────────────────────────────
		order, err = tx.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
		}
		if !order.Status.CanReceive() {
			return fmt.Errorf("pedido en estado %s: %w", order.Status, domain.ErrOrderNotReceivable)
		}
		st, err := tx.Sites.GetByName(ctx, site)
		if err != nil {
			return err
		}
		if st == nil {
			return fmt.Errorf("sede %q: %w", site, domain.ErrNotFound)
		}

		// ── 2. Líneas bloqueadas y cantidades pendientes ──────────────────────
		items, err := tx.OrderItems.ListByOrderForUpdate(ctx, order.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.OrderItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}
		received, err := tx.Receipts.SumReceivedByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		lines := make([]receiptLine, 0, len(in.Lines))
		inBatch := make(map[string]int)
		for i, l := range in.Lines {
			item := byID[l.OrderItemID]
			if item == nil {
				return &domain.LineError{Index: i, OrderItemID: l.OrderItemID, Err: domain.ErrNotFound}
			}
			if !item.IsResolved() {
				return &domain.LineError{Index: i, OrderItemID: item.ID, Err: domain.ErrPartUnresolved}
			}
			// Se compara contra lo que queda libre en el lote para no desbordar la suma.
			remaining := item.Remaining(received[item.ID])
			if l.Qty > remaining-inBatch[item.ID] {
				requested := l.Qty
				if l.Qty <= entity.MaxQty {
					requested += inBatch[item.ID]
				}
				return &domain.LineError{Index: i, OrderItemID: item.ID, Err: &domain.OverReceiptError{
					OrderItemID: item.ID,
					Requested:   requested,
					Remaining:   remaining,
				}}
			}
			inBatch[item.ID] += l.Qty
			lines = append(lines, receiptLine{index: i, item: item, qty: l.Qty, condition: conds[i], location: l.Location})
		}

		// ── 3. Bloqueo por (sede, repuesto) en orden estable y ubicación fija ──
		locations, err := uc.lockAndResolveLocations(ctx, tx, st.Name, lines)
		if err != nil {
			return err
		}

		// ── 4. Escrituras: recepción, líneas, existencias, estado ─────────────
		now := uc.now()
		receipt = &entity.Receipt{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Site:      st.Name,
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := tx.Receipts.Create(ctx, receipt); err != nil {
			return err
		}
		for _, l := range lines {
			ri := entity.ReceiptItem{
				ID:          uuid.New().String(),
				ReceiptID:   receipt.ID,
				OrderItemID: l.item.ID,
				PartID:      *l.item.PartID,
				QtyReceived: l.qty,
				Condition:   l.condition,
				Location:    locations[l.sitePart(st.Name)],
			}
			if err := tx.Receipts.CreateItem(ctx, &ri); err != nil {
				return err
			}
			receipt.Items = append(receipt.Items, ri)
		}
		for _, ri := range receipt.Items {
			key := entity.InventoryKey{Site: st.Name, PartID: ri.PartID, Condition: ri.Condition}
			if _, err := uc.ledger.UpsertInTx(ctx, tx, key, ri.QtyReceived, ri.Location); err != nil {
				return err
			}
		}
		_, err = ordering.RecomputeStatusInTx(ctx, tx, order, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("receipt_id", receipt.ID).Str("order_id", order.ID).Str("site", receipt.Site).
		Int("lines", len(receipt.Items)).Str("order_status", string(order.Status)).
		Msg("recepción registrada")
	resp := toReceiptResponse(receipt)
	resp.OrderStatus = string(order.Status)
	return &resp, nil
}

// lockAndResolveLocations toma el bloqueo de cada par (sede, repuesto) en orden y decide su ubicación:
// la ya registrada en inventario, o la primera indicada en el lote para ese par.
func (uc *ReceivingUseCase) lockAndResolveLocations(ctx context.Context, tx repository.Store, site string, lines []receiptLine) (map[entity.SitePart]string, error) {
	supplied := make(map[entity.SitePart]string)
	firstLine := make(map[entity.SitePart]receiptLine)
	for _, l := range lines {
		sp := l.sitePart(site)
		if _, ok := firstLine[sp]; !ok {
			firstLine[sp] = l
		}
		if _, ok := supplied[sp]; !ok && strings.TrimSpace(l.location) != "" {
			supplied[sp] = l.location
		}
	}
	keys := make([]entity.SitePart, 0, len(firstLine))
	for sp := range firstLine {
		keys = append(keys, sp)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Site != keys[j].Site {
			return keys[i].Site < keys[j].Site
		}
		return keys[i].PartID < keys[j].PartID
	})

	out := make(map[entity.SitePart]string, len(keys))
	for _, sp := range keys {
		if err := tx.Inventory.LockSitePart(ctx, sp); err != nil {
			return nil, err
		}
		known, err := tx.Inventory.KnownLocation(ctx, sp)
		if err != nil {
			return nil, err
		}
		loc, err := domainrcv.ResolveLocation(known, supplied[sp])
		if err != nil {
			l := firstLine[sp]
			return nil, &domain.LineError{Index: l.index, OrderItemID: l.item.ID, Err: err}
		}
		out[sp] = loc
	}
	return out, nil
}

// GetReceipt devuelve una recepción con sus líneas.
func (uc *ReceivingUseCase) GetReceipt(ctx context.Context, receiptID string) (*dto.ReceiptResponse, error) {
	r, err := uc.store.Receipts.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	resp := toReceiptResponse(r)
	return &resp, nil
}

// ListReceipts devuelve el historial de recepciones de un pedido.
func (uc *ReceivingUseCase) ListReceipts(ctx context.Context, orderID string) (*dto.ReceiptListResponse, error) {
	order, err := uc.store.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.store.Receipts.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReceiptResponse(r))
	}
	return &dto.ReceiptListResponse{OrderID: order.ID, Receipts: out}, nil
}

// ReceiptNote genera el acta de recepción en PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la recepción o su pedido no existen.
func (uc *ReceivingUseCase) ReceiptNote(ctx context.Context, receiptID string) ([]byte, string, error) {
	r, err := uc.store.Receipts.GetByID(ctx, receiptID)
	if err != nil {
		return nil, "", fmt.Errorf("acta: obtener recepción: %w", err)
	}
	if r == nil {
		return nil, "", domain.ErrNotFound
	}
	order, err := uc.store.Orders.GetByID(ctx, r.OrderID)
	if err != nil {
		return nil, "", fmt.Errorf("acta: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	data := ReceiptNoteData{
		ReceiptID:    r.ID,
		OrderID:      order.ID,
		ExternalRef:  order.ExternalRef,
		Site:         r.Site,
		SupplierName: order.SupplierID,
		ReceivedBy:   r.CreatedBy,
		ReceivedAt:   r.CreatedAt,
		OrderStatus:  string(order.Status),
	}
	if sup, err := uc.store.Suppliers.GetByID(ctx, order.SupplierID); err == nil && sup != nil {
		data.SupplierName = sup.Name
	}
	for _, it := range r.Items {
		line := ReceiptNoteLine{
			SKU:       it.PartID, // fallback
			Qty:       it.QtyReceived,
			Condition: string(it.Condition),
			Location:  it.Location,
		}
		if p, err := uc.store.Parts.GetByID(ctx, it.PartID); err == nil && p != nil {
			line.SKU, line.Label = p.SKU, p.Label
		}
		if oi, err := uc.store.OrderItems.GetByID(ctx, it.OrderItemID); err == nil && oi != nil {
			line.SupplierRef = oi.SupplierRef
		}
		data.Lines = append(data.Lines, line)
	}
	pdfBytes, err := uc.notes.GenerateReceiptNote(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("acta: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recepcion_%s.pdf", shortID(r.ID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toReceiptResponse(r *entity.Receipt) dto.ReceiptResponse {
	items := make([]dto.ReceiptItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReceiptItemResponse{
			ID:          it.ID,
			OrderItemID: it.OrderItemID,
			PartID:      it.PartID,
			Qty:         it.QtyReceived,
			Condition:   string(it.Condition),
			Location:    it.Location,
		})
	}
	return dto.ReceiptResponse{
		ID:        r.ID,
		OrderID:   r.OrderID,
		Site:      r.Site,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		Items:     items,
	}
}
