package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memCache is a map-backed cache.CacheService that ignores TTLs.
type memCache struct {
	mu    sync.Mutex
	items map[string]any
}

func newMemCache() *memCache { return &memCache{items: map[string]any{}} }

func (c *memCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memCache) Set(key string, value any, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *memCache) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
}

func (c *memCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]any{}
}

var _ cache.CacheService = (*memCache)(nil)

// fakeStore is an in-memory domain.ObjectStore.
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removeErr error
	uploadErr error
	removed   []string
}

func newFakeStore() *fakeStore { return &fakeStore{objects: map[string][]byte{}} }

const fakePublicBase = "https://cdn.test/public"

func (s *fakeStore) Upload(_ context.Context, bucket, key string, data []byte, _ string, upsert bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	full := bucket + "/" + key
	if _, exists := s.objects[full]; exists && !upsert {
		return "", fmt.Errorf("object %s already exists", full)
	}
	s.objects[full] = data
	return key, nil
}

func (s *fakeStore) PublicURL(bucket, path string) string {
	return fakePublicBase + "/" + bucket + "/" + path
}

func (s *fakeStore) PathFromURL(bucket, url string) (string, bool) {
	prefix := fakePublicBase + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func (s *fakeStore) Remove(_ context.Context, bucket string, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	for _, p := range paths {
		delete(s.objects, bucket+"/"+p)
		s.removed = append(s.removed, bucket+"/"+p)
	}
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// fakeProducts is an in-memory domain.ProductRepository.
type fakeProducts struct {
	mu        sync.Mutex
	items     map[string]domain.Product
	createErr error
	updateErr error
}

func newFakeProducts(ps ...domain.Product) *fakeProducts {
	f := &fakeProducts{items: map[string]domain.Product{}}
	for _, p := range ps {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProducts) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Product{}
	for _, p := range f.items {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.items[p.ID]; !ok {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProducts) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

// fakeBanners is an in-memory domain.BannerRepository.
type fakeBanners struct {
	mu    sync.Mutex
	items map[string]domain.Banner
}

func newFakeBanners(bs ...domain.Banner) *fakeBanners {
	f := &fakeBanners{items: map[string]domain.Banner{}}
	for _, b := range bs {
		f.items[b.ID] = b
	}
	return f
}

func (f *fakeBanners) List(context.Context) ([]domain.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Banner{}
	for _, b := range f.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeBanners) GetByID(_ context.Context, id string) (*domain.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("banner %s: %w", id, domain.ErrNotFound)
	}
	return &b, nil
}

func (f *fakeBanners) Create(_ context.Context, b *domain.Banner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	f.items[b.ID] = *b
	return nil
}

func (f *fakeBanners) Update(_ context.Context, b *domain.Banner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[b.ID]; !ok {
		return fmt.Errorf("banner %s: %w", b.ID, domain.ErrNotFound)
	}
	f.items[b.ID] = *b
	return nil
}

func (f *fakeBanners) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("banner %s: %w", id, domain.ErrNotFound)
	}
	delete(f.items, id)
	return nil
}

// fakeOrders is an in-memory domain.OrderRepository.
type fakeOrders struct {
	mu    sync.Mutex
	items []domain.Order
}

func (f *fakeOrders) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Order{}
	for _, o := range f.items {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		out = append(out, o)
	}
	total := int64(len(out))
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.items {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func (f *fakeOrders) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func (f *fakeOrders) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeOrders) Revenue(context.Context) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, o := range f.items {
		if o.Status != domain.OrderStatusCancelled {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

// fakeCustomers is an in-memory domain.CustomerRepository.
type fakeCustomers struct {
	mu            sync.Mutex
	profiles      map[string]domain.Profile
	authUsers     map[string]bool
	addresses     []domain.Address
	deleteAuthErr error
}

func newFakeCustomers(ps ...domain.Profile) *fakeCustomers {
	f := &fakeCustomers{profiles: map[string]domain.Profile{}, authUsers: map[string]bool{}}
	for _, p := range ps {
		f.profiles[p.ID] = p
		f.authUsers[p.ID] = true
	}
	return f
}

func (f *fakeCustomers) List(_ context.Context, limit, offset int) ([]domain.Profile, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Profile{}
	for _, p := range f.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeCustomers) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeCustomers) GetAddresses(_ context.Context, userID string) ([]domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Address{}
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCustomers) UpdateProfile(_ context.Context, id, fullName, phone string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	p.FullName, p.PhoneNumber = fullName, phone
	f.profiles[id] = p
	return &p, nil
}

func (f *fakeCustomers) DeleteAuthUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteAuthErr != nil {
		return f.deleteAuthErr
	}
	if !f.authUsers[id] {
		return fmt.Errorf("auth user %s: %w", id, domain.ErrNotFound)
	}
	delete(f.authUsers, id)
	delete(f.profiles, id)
	return nil
}

func (f *fakeCustomers) DeleteProfile(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[id]; !ok {
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	delete(f.profiles, id)
	return nil
}

func (f *fakeCustomers) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.profiles)), nil
}

// fakeShippingRules is an in-memory domain.ShippingRuleRepository. Writes made
// inside fakeTx are rolled back when the transaction function fails.
type fakeShippingRules struct {
	mu        sync.Mutex
	rules     []domain.ShippingRule
	failOnID  string
	writes    int
	getActive int
}

func (f *fakeShippingRules) GetAll(context.Context) ([]domain.ShippingRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ShippingRule, len(f.rules))
	copy(out, f.rules)
	return out, nil
}

func (f *fakeShippingRules) GetActive(context.Context) ([]domain.ShippingRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getActive++
	out := []domain.ShippingRule{}
	for _, r := range f.rules {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeShippingRules) Create(_ context.Context, r *domain.ShippingRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	f.rules = append(f.rules, *r)
	return nil
}

func (f *fakeShippingRules) Update(_ context.Context, r *domain.ShippingRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if r.ID == f.failOnID {
		return errors.New("write failed")
	}
	for i := range f.rules {
		if f.rules[i].ID == r.ID {
			f.rules[i] = *r
			return nil
		}
	}
	return fmt.Errorf("shipping rule %s: %w", r.ID, domain.ErrNotFound)
}

func (f *fakeShippingRules) snapshot() []domain.ShippingRule {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ShippingRule, len(f.rules))
	copy(out, f.rules)
	return out
}

func (f *fakeShippingRules) restore(rules []domain.ShippingRule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = rules
}

type fakeTx struct {
	rules *fakeShippingRules
}

func (t fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	before := t.rules.snapshot()
	if err := fn(ctx); err != nil {
		t.rules.restore(before)
		return err
	}
	return nil
}
