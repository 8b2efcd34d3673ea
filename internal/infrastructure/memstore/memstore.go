// Package memstore implementa los puertos del dominio en memoria, con un
// TxRunner que serializa transacciones bajo un mutex y revierte con snapshot.
// Lo usan los tests de casos de uso (sin base de datos) y sirve para correr
// la API en modo demo.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Store estado en memoria. Los métodos públicos toman el lock; dentro de una
// transacción (Run) los repos atados operan sin lock porque Run ya lo tiene.
type Store struct {
	mu      sync.Mutex
	items   map[string]*entity.StockItem // por SKU
	audits  []*entity.AuditEntry
	insets  []*entity.Inset
	outsets []*entity.Outset
	users   map[string]*entity.User // por id
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		items: make(map[string]*entity.StockItem),
		users: make(map[string]*entity.User),
	}
}

// snapshot captura el estado para revertir si la transacción falla. Las
// entradas de los logs son inmutables tras el append, así que basta copiar
// los headers de slice; los items sí se copian por valor.
type snapshot struct {
	items   map[string]entity.StockItem
	audits  []*entity.AuditEntry
	insets  []*entity.Inset
	outsets []*entity.Outset
}

func (s *Store) snapshot() snapshot {
	items := make(map[string]entity.StockItem, len(s.items))
	for sku, it := range s.items {
		items[sku] = *it
	}
	return snapshot{
		items:   items,
		audits:  s.audits[:len(s.audits):len(s.audits)],
		insets:  s.insets[:len(s.insets):len(s.insets)],
		outsets: s.outsets[:len(s.outsets):len(s.outsets)],
	}
}

func (s *Store) restore(snap snapshot) {
	items := make(map[string]*entity.StockItem, len(snap.items))
	for sku, it := range snap.items {
		copied := it
		items[sku] = &copied
	}
	s.items = items
	s.audits = snap.audits
	s.insets = snap.insets
	s.outsets = snap.outsets
}

var _ ledger.TxRunner = (*Store)(nil)

// Run implementa ledger.TxRunner: serializa la transacción con el lock y
// revierte el estado si fn retorna error.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	auditRepo repository.AuditRepository,
	movRepo repository.MovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	tx := &txView{s: s}
	if err := fn(tx, tx, tx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ── Lógica interna (sin lock; el caller lo sostiene) ──────────────────────────

func (s *Store) getLocked(sku string) *entity.StockItem {
	it, ok := s.items[sku]
	if !ok {
		return nil
	}
	copied := *it
	return &copied
}

func (s *Store) applyDeltaLocked(sku string, delta int64, bin, name string) (*entity.StockItem, error) {
	now := time.Now()
	it, ok := s.items[sku]
	if !ok {
		if delta < 0 {
			return nil, domain.ErrInsufficientStock
		}
		it = &entity.StockItem{
			ID:        uuid.New().String(),
			SKU:       sku,
			Name:      name,
			Bin:       bin,
			Quantity:  delta,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.items[sku] = it
		copied := *it
		return &copied, nil
	}
	if it.Quantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	it.Quantity += delta
	if bin != "" {
		it.Bin = bin
	}
	if name != "" {
		it.Name = name
	}
	it.UpdatedAt = now
	copied := *it
	return &copied, nil
}

// ── Repos atados a la transacción (sin lock) ─────────────────────────────────

type txView struct {
	s *Store
}

var (
	_ repository.StockItemRepository = (*txView)(nil)
	_ repository.AuditRepository    = (*txView)(nil)
	_ repository.MovementRepository = (*txView)(nil)
)

func (t *txView) Get(_ context.Context, sku string) (*entity.StockItem, error) {
	return t.s.getLocked(sku), nil
}

func (t *txView) ApplyDelta(_ context.Context, sku string, delta int64, bin, name string) (*entity.StockItem, error) {
	return t.s.applyDeltaLocked(sku, delta, bin, name)
}

func (t *txView) Create(_ context.Context, entry *entity.AuditEntry) error {
	copied := *entry
	t.s.audits = append(t.s.audits, &copied)
	return nil
}

func (t *txView) List(_ context.Context, limit, offset int) ([]*entity.AuditEntry, error) {
	return t.s.listAuditsLocked(limit, offset), nil
}

func (t *txView) ListByDocument(_ context.Context, documentID string) ([]*entity.AuditEntry, error) {
	return t.s.listAuditsByDocumentLocked(documentID), nil
}

func (t *txView) CreateInset(_ context.Context, inset *entity.Inset) error {
	copied := *inset
	t.s.insets = append(t.s.insets, &copied)
	return nil
}

func (t *txView) CreateOutset(_ context.Context, outset *entity.Outset) error {
	copied := *outset
	t.s.outsets = append(t.s.outsets, &copied)
	return nil
}

func (t *txView) ListInsets(_ context.Context, limit, offset int) ([]*entity.Inset, error) {
	return t.s.listInsetsLocked(limit, offset), nil
}

func (t *txView) ListOutsets(_ context.Context, limit, offset int) ([]*entity.Outset, error) {
	return t.s.listOutsetsLocked(limit, offset), nil
}

// ── Vistas con lock por llamada (uso fuera de transacción) ───────────────────

// StockItems devuelve el puerto de existencias con lock por llamada.
func (s *Store) StockItems() repository.StockItemRepository { return stockItemsView{s} }

// Audits devuelve el puerto de auditoría con lock por llamada.
func (s *Store) Audits() repository.AuditRepository { return auditsView{s} }

// Movements devuelve el puerto del diario con lock por llamada.
func (s *Store) Movements() repository.MovementRepository { return movementsView{s} }

// Queries devuelve las proyecciones de solo lectura con lock por llamada.
func (s *Store) Queries() repository.InventoryQueryRepository { return queriesView{s} }

// Users devuelve el puerto de usuarios con lock por llamada.
func (s *Store) Users() repository.UserRepository { return usersView{s} }

type stockItemsView struct{ s *Store }

func (v stockItemsView) Get(_ context.Context, sku string) (*entity.StockItem, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.getLocked(sku), nil
}

func (v stockItemsView) ApplyDelta(_ context.Context, sku string, delta int64, bin, name string) (*entity.StockItem, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.applyDeltaLocked(sku, delta, bin, name)
}

type auditsView struct{ s *Store }

func (v auditsView) Create(_ context.Context, entry *entity.AuditEntry) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	copied := *entry
	v.s.audits = append(v.s.audits, &copied)
	return nil
}

func (v auditsView) List(_ context.Context, limit, offset int) ([]*entity.AuditEntry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.listAuditsLocked(limit, offset), nil
}

func (v auditsView) ListByDocument(_ context.Context, documentID string) ([]*entity.AuditEntry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.listAuditsByDocumentLocked(documentID), nil
}

type movementsView struct{ s *Store }

func (v movementsView) CreateInset(_ context.Context, inset *entity.Inset) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	copied := *inset
	v.s.insets = append(v.s.insets, &copied)
	return nil
}

func (v movementsView) CreateOutset(_ context.Context, outset *entity.Outset) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	copied := *outset
	v.s.outsets = append(v.s.outsets, &copied)
	return nil
}

func (v movementsView) ListInsets(_ context.Context, limit, offset int) ([]*entity.Inset, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.listInsetsLocked(limit, offset), nil
}

func (v movementsView) ListOutsets(_ context.Context, limit, offset int) ([]*entity.Outset, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.listOutsetsLocked(limit, offset), nil
}

type queriesView struct{ s *Store }

func (v queriesView) List(_ context.Context, orderBy string) ([]*entity.StockItem, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := make([]*entity.StockItem, 0, len(v.s.items))
	for _, it := range v.s.items {
		copied := *it
		out = append(out, &copied)
	}
	switch orderBy {
	case repository.OrderByRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SKU < out[j].SKU
		})
	}
	return out, nil
}

func (v queriesView) LowStockCount(_ context.Context, threshold int64) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var n int64
	for _, it := range v.s.items {
		if it.Quantity < threshold {
			n++
		}
	}
	return n, nil
}

func (v queriesView) DistinctBinCount(_ context.Context) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	bins := make(map[string]struct{})
	for _, it := range v.s.items {
		if it.Bin != "" {
			bins[it.Bin] = struct{}{}
		}
	}
	return int64(len(bins)), nil
}

func (v queriesView) MovementTotals(_ context.Context) ([]repository.MovementTotal, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	totals := make(map[string]*repository.MovementTotal)
	for sku, it := range v.s.items {
		totals[sku] = &repository.MovementTotal{SKU: sku, Quantity: it.Quantity}
	}
	for _, in := range v.s.insets {
		if t, ok := totals[in.SKU]; ok {
			t.InsetTotal += in.Quantity
		}
	}
	for _, out := range v.s.outsets {
		if t, ok := totals[out.SKU]; ok {
			t.OutsetTotal += out.Quantity
		}
	}
	out := make([]repository.MovementTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

type usersView struct{ s *Store }

func (v usersView) Create(_ context.Context, user *entity.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, u := range v.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	copied := *user
	v.s.users[user.ID] = &copied
	return nil
}

func (v usersView) GetByID(_ context.Context, id string) (*entity.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	u, ok := v.s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (v usersView) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, u := range v.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) listAuditsLocked(limit, offset int) []*entity.AuditEntry {
	ordered := make([]*entity.AuditEntry, len(s.audits))
	copy(ordered, s.audits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return paginate(ordered, limit, offset)
}

func (s *Store) listAuditsByDocumentLocked(documentID string) []*entity.AuditEntry {
	var out []*entity.AuditEntry
	for _, e := range s.audits {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) listInsetsLocked(limit, offset int) []*entity.Inset {
	ordered := make([]*entity.Inset, len(s.insets))
	copy(ordered, s.insets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return paginate(ordered, limit, offset)
}

func (s *Store) listOutsetsLocked(limit, offset int) []*entity.Outset {
	ordered := make([]*entity.Outset, len(s.outsets))
	copy(ordered, s.outsets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return paginate(ordered, limit, offset)
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
