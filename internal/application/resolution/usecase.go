package resolution

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
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// ResolutionUseCase cola de referencias de proveedor sin repuesto conocido.
// Aprobar crea la referencia canónica y re-enlaza las líneas huérfanas en la misma transacción.
type ResolutionUseCase struct {
	store    repository.Store
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewResolutionUseCase construye el caso de uso.
func NewResolutionUseCase(store repository.Store, txRunner TxRunner, log zerolog.Logger) *ResolutionUseCase {
	return &ResolutionUseCase{
		store:    store,
		txRunner: txRunner,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ ordering.PendingRaiser = (*ResolutionUseCase)(nil)

// RaisePending abre una referencia pendiente para (proveedor, referencia). Si ya existe una,
// la devuelve sin cambios (Created=false).
func (uc *ResolutionUseCase) RaisePending(ctx context.Context, userID string, in dto.RaisePendingRequest) (*dto.PendingRefResponse, error) {
	var (
		stored  *entity.PendingRef
		created bool
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		sup, err := tx.Suppliers.GetByID(ctx, strings.TrimSpace(in.SupplierID))
		if err != nil {
			return err
		}
		if sup == nil {
			return fmt.Errorf("proveedor %s: %w", in.SupplierID, domain.ErrNotFound)
		}
		stored, created, err = uc.RaisePendingInTx(ctx, tx, entity.PendingRef{
			SupplierID:  sup.ID,
			SupplierRef: in.SupplierRef,
			ProductURL:  in.ProductURL,
			Note:        in.Note,
			CreatedBy:   userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toPendingRefResponse(stored)
	resp.Created = created
	return &resp, nil
}

// RaisePendingInTx implementa ordering.PendingRaiser dentro de la transacción del llamador.
// Falla con ErrDuplicate si el proveedor ya tiene esa referencia asociada a un repuesto.
func (uc *ResolutionUseCase) RaisePendingInTx(ctx context.Context, tx repository.Store, in entity.PendingRef) (*entity.PendingRef, bool, error) {
	in.SupplierID = strings.TrimSpace(in.SupplierID)
	in.SupplierRef = strings.TrimSpace(in.SupplierRef)
	if in.SupplierID == "" || in.SupplierRef == "" {
		return nil, false, domain.ErrInvalidInput
	}
	known, err := tx.SupplierRefs.GetBySupplierRef(ctx, in.SupplierID, in.SupplierRef)
	if err != nil {
		return nil, false, err
	}
	if known != nil {
		return nil, false, fmt.Errorf("referencia %q ya asociada al repuesto %s: %w", in.SupplierRef, known.PartID, domain.ErrDuplicate)
	}
	in.ID = uuid.New().String()
	in.CreatedAt = uc.now()
	stored, created, err := tx.PendingRefs.CreateIfAbsent(ctx, &in)
	if err != nil {
		return nil, false, err
	}
	if created {
		uc.log.Info().Str("pending_ref_id", stored.ID).Str("supplier_id", stored.SupplierID).
			Str("supplier_ref", stored.SupplierRef).Msg("referencia pendiente registrada")
	}
	return stored, created, nil
}

// Approve resuelve la referencia pendiente hacia un repuesto del catálogo:
// crea la referencia canónica, elimina la pendiente, re-enlaza las líneas con part_id nulo
// y recalcula el estado de los pedidos afectados. Todo en una transacción.
func (uc *ResolutionUseCase) Approve(ctx context.Context, pendingID string, in dto.ApprovePendingRequest) (*dto.ApprovePendingResponse, error) {
	partID, sku := strings.TrimSpace(in.PartID), strings.TrimSpace(in.SKU)
	if partID == "" && sku == "" {
		return nil, fmt.Errorf("se requiere part_id o sku: %w", domain.ErrInvalidInput)
	}
	var (
		ref      *entity.SupplierPartRef
		relinked int
		affected []string
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		pending, err := tx.PendingRefs.GetForUpdate(ctx, pendingID)
		if err != nil {
			return err
		}
		if pending == nil {
			return fmt.Errorf("referencia pendiente %s: %w", pendingID, domain.ErrNotFound)
		}
		part, err := findPart(ctx, tx, partID, sku)
		if err != nil {
			return err
		}
		now := uc.now()

		ref, err = tx.SupplierRefs.GetBySupplierRef(ctx, pending.SupplierID, pending.SupplierRef)
		if err != nil {
			return err
		}
		switch {
		case ref != nil && ref.PartID != part.ID:
			return fmt.Errorf("referencia %q ya asociada al repuesto %s: %w", pending.SupplierRef, ref.PartID, domain.ErrConflict)
		case ref == nil:
			productURL := strings.TrimSpace(in.ProductURL)
			if productURL == "" {
				productURL = pending.ProductURL
			}
			ref = &entity.SupplierPartRef{
				ID:          uuid.New().String(),
				PartID:      part.ID,
				SupplierID:  pending.SupplierID,
				SupplierRef: pending.SupplierRef,
				ProductURL:  productURL,
				CreatedAt:   now,
			}
			if err := tx.SupplierRefs.Create(ctx, ref); err != nil {
				return err
			}
		}
		if err := tx.PendingRefs.Delete(ctx, pending.ID); err != nil {
			return err
		}

		// Bloquear los pedidos antes de tocar sus líneas, en orden estable.
		affected, err = tx.OrderItems.ListOrphanOrderIDs(ctx, pending.SupplierID, pending.SupplierRef)
		if err != nil {
			return err
		}
		sort.Strings(affected)
		orders := make([]*entity.Order, 0, len(affected))
		for _, id := range affected {
			o, err := tx.Orders.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if o != nil {
				orders = append(orders, o)
			}
		}
		relinked, err = tx.OrderItems.RelinkPart(ctx, pending.SupplierID, pending.SupplierRef, part.ID)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if _, err := ordering.RecomputeStatusInTx(ctx, tx, o, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if affected == nil {
		affected = []string{}
	}
	uc.log.Info().Str("pending_ref_id", pendingID).Str("part_id", ref.PartID).
		Int("relinked_items", relinked).Strs("orders", affected).Msg("referencia aprobada")
	return &dto.ApprovePendingResponse{
		SupplierPartRef: toSupplierPartRefResponse(ref),
		RelinkedItems:   relinked,
		AffectedOrders:  affected,
	}, nil
}

// Reject elimina la referencia pendiente sin crear la canónica. Las líneas siguen sin repuesto.
func (uc *ResolutionUseCase) Reject(ctx context.Context, pendingID string) error {
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		pending, err := tx.PendingRefs.GetForUpdate(ctx, pendingID)
		if err != nil {
			return err
		}
		if pending == nil {
			return fmt.Errorf("referencia pendiente %s: %w", pendingID, domain.ErrNotFound)
		}
		return tx.PendingRefs.Delete(ctx, pending.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("pending_ref_id", pendingID).Msg("referencia rechazada")
	return nil
}

// Get devuelve una referencia pendiente.
func (uc *ResolutionUseCase) Get(ctx context.Context, pendingID string) (*dto.PendingRefResponse, error) {
	p, err := uc.store.PendingRefs.GetByID(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPendingRefResponse(p)
	return &resp, nil
}

// List lista las referencias pendientes, opcionalmente de un proveedor.
func (uc *ResolutionUseCase) List(ctx context.Context, supplierID string, page dto.PageRequest) (*dto.PendingRefListResponse, error) {
	page.DefaultPage()
	list, err := uc.store.PendingRefs.List(ctx, strings.TrimSpace(supplierID), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingRefResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPendingRefResponse(p))
	}
	return &dto.PendingRefListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func findPart(ctx context.Context, tx repository.Store, partID, sku string) (*entity.Part, error) {
	var (
		p   *entity.Part
		err error
	)
	if partID != "" {
		p, err = tx.Parts.GetByID(ctx, partID)
	} else {
		p, err = tx.Parts.GetBySKU(ctx, sku)
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("repuesto: %w", domain.ErrNotFound)
	}
	return p, nil
}

func toPendingRefResponse(p *entity.PendingRef) dto.PendingRefResponse {
	return dto.PendingRefResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		SupplierRef: p.SupplierRef,
		ProductURL:  p.ProductURL,
		Note:        p.Note,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func toSupplierPartRefResponse(r *entity.SupplierPartRef) dto.SupplierPartRefResponse {
	return dto.SupplierPartRefResponse{
		ID:          r.ID,
		PartID:      r.PartID,
		SupplierID:  r.SupplierID,
		SupplierRef: r.SupplierRef,
		ProductURL:  r.ProductURL,
		CreatedAt:   r.CreatedAt,
	}
}
