// Package memory implementa los repositorios sobre mapas en memoria, para demos locales y tests.
// Las transacciones se serializan: cada una trabaja sobre una copia del estado y la publica al confirmar.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

type state struct {
	parts        map[string]entity.Part
	suppliers    map[string]entity.Supplier
	sites        map[string]entity.Site
	refs         map[string]entity.SupplierPartRef
	orders       map[string]entity.Order
	items        map[string]entity.OrderItem
	receipts     map[string]entity.Receipt
	receiptItems map[string][]entity.ReceiptItem
	inventory    map[entity.InventoryKey]entity.InventoryRecord
	pending      map[string]entity.PendingRef
}

func newState() *state {
	return &state{
		parts:        map[string]entity.Part{},
		suppliers:    map[string]entity.Supplier{},
		sites:        map[string]entity.Site{},
		refs:         map[string]entity.SupplierPartRef{},
		orders:       map[string]entity.Order{},
		items:        map[string]entity.OrderItem{},
		receipts:     map[string]entity.Receipt{},
		receiptItems: map[string][]entity.ReceiptItem{},
		inventory:    map[entity.InventoryKey]entity.InventoryRecord{},
		pending:      map[string]entity.PendingRef{},
	}
}

// clone copia los mapas; los valores se reemplazan completos al escribir, nunca se mutan en sitio.
func (s *state) clone() *state {
	c := &state{
		parts:        maps.Clone(s.parts),
		suppliers:    maps.Clone(s.suppliers),
		sites:        maps.Clone(s.sites),
		refs:         maps.Clone(s.refs),
		orders:       maps.Clone(s.orders),
		items:        maps.Clone(s.items),
		receipts:     maps.Clone(s.receipts),
		receiptItems: make(map[string][]entity.ReceiptItem, len(s.receiptItems)),
		inventory:    maps.Clone(s.inventory),
		pending:      maps.Clone(s.pending),
	}
	for k, v := range s.receiptItems {
		c.receiptItems[k] = slices.Clone(v)
	}
	return c
}

// Store almacén en memoria. Implementa el TxRunner de los casos de uso.
type Store struct {
	sem         chan struct{}
	dataMu      sync.RWMutex
	st          *state
	lockTimeout time.Duration
	now         func() time.Time
}

// Option configura el Store.
type Option func(*Store)

// WithLockTimeout fija cuánto espera una transacción por el turno antes de fallar con ErrContention.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New crea un almacén vacío.
func New(opts ...Option) *Store {
	s := &Store{
		sem:         make(chan struct{}, 1),
		st:          newState(),
		lockTimeout: 5 * time.Second,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run ejecuta fn con repositorios sobre una copia privada del estado. Si fn devuelve error la copia
// se descarta (rollback); si no, reemplaza el estado publicado (commit).
func (s *Store) Run(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.dataMu.RLock()
	work := s.st.clone()
	s.dataMu.RUnlock()

	if err := fn(s.bind(&txAccess{st: work})); err != nil {
		return err
	}
	s.dataMu.Lock()
	s.st = work
	s.dataMu.Unlock()
	return nil
}

func (s *Store) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return domain.ErrContention
	}
}

func (s *Store) release() { <-s.sem }

// Repos devuelve los repositorios fuera de transacción: las lecturas ven el último estado
// confirmado y cada escritura es su propia transacción.
func (s *Store) Repos() repository.Store {
	return s.bind(&rootAccess{s: s})
}

func (s *Store) bind(a access) repository.Store {
	return repository.Store{
		Orders:       &orderRepo{a: a},
		OrderItems:   &orderItemRepo{a: a},
		Receipts:     &receiptRepo{a: a},
		Inventory:    &inventoryRepo{a: a, now: s.now},
		PendingRefs:  &pendingRefRepo{a: a},
		Parts:        &partRepo{a: a},
		Suppliers:    &supplierRepo{a: a},
		Sites:        &siteRepo{a: a},
		SupplierRefs: &supplierRefRepo{a: a},
	}
}

// access separa cómo se lee y escribe el estado dentro y fuera de una transacción.
type access interface {
	read(fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

type txAccess struct{ st *state }

func (t *txAccess) read(fn func(st *state) error) error { return fn(t.st) }

func (t *txAccess) write(_ context.Context, fn func(st *state) error) error { return fn(t.st) }

type rootAccess struct{ s *Store }

func (r *rootAccess) read(fn func(st *state) error) error {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	return fn(r.s.st)
}

func (r *rootAccess) write(ctx context.Context, fn func(st *state) error) error {
	if err := r.s.acquire(ctx); err != nil {
		return err
	}
	defer r.s.release()
	r.s.dataMu.RLock()
	work := r.s.st.clone()
	r.s.dataMu.RUnlock()
	if err := fn(work); err != nil {
		return err
	}
	r.s.dataMu.Lock()
	r.s.st = work
	r.s.dataMu.Unlock()
	return nil
}

// ── Carga de catálogo ─────────────────────────────────────────────────────────

// AddPart registra o reemplaza un repuesto del catálogo.
func (s *Store) AddPart(p entity.Part) { s.seed(func(st *state) { st.parts[p.ID] = p }) }

// AddSupplier registra o reemplaza un proveedor.
func (s *Store) AddSupplier(sup entity.Supplier) {
	s.seed(func(st *state) { st.suppliers[sup.ID] = sup })
}

// AddSite registra o reemplaza una sede.
func (s *Store) AddSite(site entity.Site) { s.seed(func(st *state) { st.sites[site.ID] = site }) }

// AddSupplierPartRef registra o reemplaza una referencia canónica.
func (s *Store) AddSupplierPartRef(ref entity.SupplierPartRef) {
	s.seed(func(st *state) { st.refs[ref.ID] = ref })
}

func (s *Store) seed(fn func(st *state)) {
	s.sem <- struct{}{}
	defer s.release()
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	fn(s.st)
}

func sortByCreated[T any](list []T, key func(T) (time.Time, string)) {
	slices.SortFunc(list, func(a, b T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := ta.Compare(tb); c != 0 {
			return c
		}
		switch {
		case ia < ib:
			return -1
		case ia > ib:
			return 1
		}
		return 0
	})
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
