package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// InventoryUseCase libro de existencias por (sede, repuesto, condición).
// Solo suma cantidades; no hay descuentos ni traslados.
type InventoryUseCase struct {
	store    repository.Store
	txRunner TxRunner
	log      zerolog.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(store repository.Store, txRunner TxRunner, log zerolog.Logger) *InventoryUseCase {
	return &InventoryUseCase{store: store, txRunner: txRunner, log: log}
}

// UpsertInput entrada para sumar existencias a un bucket.
type UpsertInput struct {
	Site      string
	PartID    string
	Condition entity.Condition
	Qty       int
	Location  string
}

// Upsert suma Qty al bucket en su propia transacción, bloqueando antes el par (sede, repuesto).
func (uc *InventoryUseCase) Upsert(ctx context.Context, in UpsertInput) (*entity.InventoryRecord, error) {
	var rec *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		key := entity.InventoryKey{Site: in.Site, PartID: in.PartID, Condition: in.Condition}
		if err := tx.Inventory.LockSitePart(ctx, key.SitePart()); err != nil {
			return err
		}
		var err error
		rec, err = uc.UpsertInTx(ctx, tx, key, in.Qty, in.Location)
		return err
	})
	return rec, err
}

// UpsertInTx suma qty al bucket usando los repositorios de la transacción del llamador.
// Crea el registro si no existe; la ubicación solo se escribe si la actual es nula.
// El llamador debe tener tomado el bloqueo del par (sede, repuesto).
func (uc *InventoryUseCase) UpsertInTx(ctx context.Context, tx repository.Store, key entity.InventoryKey, qty int, location string) (*entity.InventoryRecord, error) {
	if !entity.ValidQty(qty) {
		return nil, domain.ErrInvalidQuantity
	}
	if key.Site == "" || key.PartID == "" || !key.Condition.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	rec, err := tx.Inventory.AddQuantity(ctx, key, qty, strings.TrimSpace(location))
	if err != nil {
		return nil, fmt.Errorf("inventario %s/%s/%s: %w", key.Site, key.PartID, key.Condition, err)
	}
	uc.log.Debug().
		Str("site", key.Site).Str("part_id", key.PartID).Str("condition", string(key.Condition)).
		Int("delta", qty).Int("qty_on_hand", rec.QtyOnHand).
		Msg("existencias actualizadas")
	return rec, nil
}

// List consulta existencias con filtros opcionales (sede, repuesto, condición).
func (uc *InventoryUseCase) List(ctx context.Context, q dto.InventoryQuery) (*dto.InventoryListResponse, error) {
	q.DefaultPage()
	filter := repository.InventoryFilter{
		Site:   strings.TrimSpace(q.Site),
		PartID: strings.TrimSpace(q.PartID),
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if c := strings.TrimSpace(q.Condition); c != "" {
		cond, err := entity.ParseCondition(c)
		if err != nil {
			return nil, err
		}
		filter.Condition = cond
	}
	list, err := uc.store.Inventory.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toInventoryRecordResponse(r))
	}
	return &dto.InventoryListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// KnownLocation devuelve la ubicación fija del par (sede, repuesto), si ya se asignó.
func (uc *InventoryUseCase) KnownLocation(ctx context.Context, site, partID string) (*dto.KnownLocationResponse, error) {
	site, partID = strings.TrimSpace(site), strings.TrimSpace(partID)
	if site == "" || partID == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.store.Inventory.KnownLocation(ctx, entity.SitePart{Site: site, PartID: partID})
	if err != nil {
		return nil, err
	}
	return &dto.KnownLocationResponse{Site: site, PartID: partID, Location: loc, Known: loc != ""}, nil
}

func toInventoryRecordResponse(r *entity.InventoryRecord) dto.InventoryRecordResponse {
	return dto.InventoryRecordResponse{
		Site:      r.Site,
		PartID:    r.PartID,
		Condition: string(r.Condition),
		QtyOnHand: r.QtyOnHand,
		Location:  r.Location,
		UpdatedAt: r.UpdatedAt.In(time.UTC),
	}
}
