package usecases

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/domain/entitlement"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
)

// =====================================================================
// In-memory repositories for use case tests
// =====================================================================

// memRequestRepo is an in-memory purchase.RequestRepository that enforces
// the duplicate-pending constraint the way the database index does.
type memRequestRepo struct {
	mu       sync.Mutex
	nextID   uint
	requests map[uint]*purchase.PurchaseRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[uint]*purchase.PurchaseRequest)}
}

func (m *memRequestRepo) clone(r *purchase.PurchaseRequest) *purchase.PurchaseRequest {
	cloned, err := purchase.ReconstructPurchaseRequest(
		r.ID(), r.SID(), r.UserID(), r.Target(), r.Status(),
		r.Metadata(), r.RespondedAt(), r.CreatedAt(), r.UpdatedAt(), r.Version(),
	)
	if err != nil {
		panic(err)
	}
	return cloned
}

func (m *memRequestRepo) Create(_ context.Context, r *purchase.PurchaseRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.requests {
		if existing.UserID() == r.UserID() && existing.Target().Equal(r.Target()) && existing.IsPending() {
			return errors.NewConflictError("a pending request already exists for this content unit")
		}
	}

	m.nextID++
	if err := r.SetID(m.nextID); err != nil {
		return err
	}
	m.requests[r.ID()] = m.clone(r)
	return nil
}

func (m *memRequestRepo) Update(_ context.Context, r *purchase.PurchaseRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[r.ID()]; !ok {
		return errors.NewNotFoundError("purchase request not found")
	}
	m.requests[r.ID()] = m.clone(r)
	return nil
}

func (m *memRequestRepo) GetByID(_ context.Context, requestID uint) (*purchase.PurchaseRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[requestID]
	if !ok {
		return nil, errors.NewNotFoundError("purchase request not found")
	}
	return m.clone(r), nil
}

func (m *memRequestRepo) GetBySID(_ context.Context, sid string) (*purchase.PurchaseRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.requests {
		if r.SID() == sid {
			return m.clone(r), nil
		}
	}
	return nil, errors.NewNotFoundError("purchase request not found")
}

func (m *memRequestRepo) ListByUser(_ context.Context, userID uint) ([]*purchase.PurchaseRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*purchase.PurchaseRequest
	for _, r := range m.requests {
		if r.UserID() == userID {
			out = append(out, m.clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	return out, nil
}

func (m *memRequestRepo) ListByUserAndKind(ctx context.Context, userID uint, kind purchase.UnitKind) ([]*purchase.PurchaseRequest, error) {
	all, err := m.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []*purchase.PurchaseRequest
	for _, r := range all {
		if r.Target().Kind == kind {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRequestRepo) ListPending(_ context.Context) ([]*purchase.PurchaseRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*purchase.PurchaseRequest
	for _, r := range m.requests {
		if r.IsPending() {
			out = append(out, m.clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *memRequestRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// memReceiptRepo is an in-memory purchase.ReceiptRepository with one
// record per request.
type memReceiptRepo struct {
	mu       sync.Mutex
	nextID   uint
	receipts map[uint]*purchase.Receipt // keyed by request ID
}

func newMemReceiptRepo() *memReceiptRepo {
	return &memReceiptRepo{receipts: make(map[uint]*purchase.Receipt)}
}

func (m *memReceiptRepo) clone(rc *purchase.Receipt) *purchase.Receipt {
	cloned, err := purchase.ReconstructReceipt(rc.ID(), rc.SID(), rc.RequestID(), rc.FileRef(), rc.UploadedAt())
	if err != nil {
		panic(err)
	}
	return cloned
}

func (m *memReceiptRepo) Save(_ context.Context, rc *purchase.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rc.ID() == 0 {
		m.nextID++
		if err := rc.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.receipts[rc.RequestID()] = m.clone(rc)
	return nil
}

func (m *memReceiptRepo) GetByRequestID(_ context.Context, requestID uint) (*purchase.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rc, ok := m.receipts[requestID]
	if !ok {
		return nil, errors.NewNotFoundError("receipt not found")
	}
	return m.clone(rc), nil
}

func (m *memReceiptRepo) ListByRequestIDs(_ context.Context, requestIDs []uint) ([]*purchase.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*purchase.Receipt
	for _, id := range requestIDs {
		if rc, ok := m.receipts[id]; ok {
			out = append(out, m.clone(rc))
		}
	}
	return out, nil
}

// memCatalogRepo is an in-memory catalog.Repository preloaded with a
// small catalog hierarchy.
type memCatalogRepo struct {
	packs    map[uint]*catalog.Pack
	subUnits map[uint]*catalog.SubUnit
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{
		packs:    make(map[uint]*catalog.Pack),
		subUnits: make(map[uint]*catalog.SubUnit),
	}
}

// addPack registers a pack with the given ID.
func (m *memCatalogRepo) addPack(id uint, title string) {
	now := time.Now()
	p, err := catalog.ReconstructPack(id, title, title, "", 1000, true, now, now)
	if err != nil {
		panic(err)
	}
	m.packs[id] = p
}

// addSubUnit registers a sub-unit belonging to packID.
func (m *memCatalogRepo) addSubUnit(id, packID uint, title string) {
	now := time.Now()
	s, err := catalog.ReconstructSubUnit(id, packID, title, title, 500, true, 0, now, now)
	if err != nil {
		panic(err)
	}
	m.subUnits[id] = s
}

func (m *memCatalogRepo) CreatePack(_ context.Context, p *catalog.Pack) error {
	id := uint(len(m.packs) + 1)
	if err := p.SetID(id); err != nil {
		return err
	}
	m.packs[id] = p
	return nil
}

func (m *memCatalogRepo) UpdatePack(_ context.Context, p *catalog.Pack) error {
	if _, ok := m.packs[p.ID()]; !ok {
		return errors.NewNotFoundError("pack not found")
	}
	m.packs[p.ID()] = p
	return nil
}

func (m *memCatalogRepo) GetPackByID(_ context.Context, id uint) (*catalog.Pack, error) {
	p, ok := m.packs[id]
	if !ok {
		return nil, errors.NewNotFoundError("pack not found")
	}
	return p, nil
}

func (m *memCatalogRepo) ListPacks(_ context.Context, publishedOnly bool) ([]*catalog.Pack, error) {
	var out []*catalog.Pack
	for _, p := range m.packs {
		if !publishedOnly || p.Published() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *memCatalogRepo) CreateSubUnit(_ context.Context, s *catalog.SubUnit) error {
	id := uint(len(m.subUnits) + 1)
	if err := s.SetID(id); err != nil {
		return err
	}
	m.subUnits[id] = s
	return nil
}

func (m *memCatalogRepo) GetSubUnitByID(_ context.Context, id uint) (*catalog.SubUnit, error) {
	s, ok := m.subUnits[id]
	if !ok {
		return nil, errors.NewNotFoundError("sub-unit not found")
	}
	return s, nil
}

func (m *memCatalogRepo) ListSubUnitsByPack(_ context.Context, packID uint) ([]*catalog.SubUnit, error) {
	var out []*catalog.SubUnit
	for _, s := range m.subUnits {
		if s.PackID() == packID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder() < out[j].SortOrder() })
	return out, nil
}

// spyDecisionCache records cache interactions.
type spyDecisionCache struct {
	mu           sync.Mutex
	store        map[string]entitlement.AccessDecision
	invalidated  []uint
	setCount     int
	getHitCount  int
	getMissCount int
}

func newSpyDecisionCache() *spyDecisionCache {
	return &spyDecisionCache{store: make(map[string]entitlement.AccessDecision)}
}

func cacheKey(userID uint, target purchase.UnitRef) string {
	return fmt.Sprintf("%d@%s", userID, target.String())
}

func (s *spyDecisionCache) Get(_ context.Context, userID uint, target purchase.UnitRef) (entitlement.AccessDecision, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.store[cacheKey(userID, target)]
	if ok {
		s.getHitCount++
	} else {
		s.getMissCount++
	}
	return d, ok, nil
}

func (s *spyDecisionCache) Set(_ context.Context, userID uint, target purchase.UnitRef, d entitlement.AccessDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[cacheKey(userID, target)] = d
	s.setCount++
	return nil
}

func (s *spyDecisionCache) InvalidateUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = make(map[string]entitlement.AccessDecision)
	s.invalidated = append(s.invalidated, userID)
	return nil
}
