package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rowanvale/embla/internal/domain"
	"github.com/rowanvale/embla/internal/telemetry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *telemetry.BusinessMetrics {
	return telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())
}

// memCartStore is an in-memory CartStore with MutateCart semantics matching
// the postgres implementation: load under lock, apply, recompute, persist.
type memCartStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*domain.Cart
	err   error
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[uuid.UUID]*domain.Cart)}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = append([]domain.CartItem(nil), c.Items...)
	return &out
}

func (s *memCartStore) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	cart, ok := s.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (s *memCartStore) MutateCart(ctx context.Context, userID uuid.UUID, create bool, fn func(*domain.Cart) error) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	cart, ok := s.carts[userID]
	if !ok {
		if !create {
			return nil, domain.ErrCartNotFound
		}
		cart = domain.EmptyCart(userID)
	}
	work := cloneCart(cart)
	if err := fn(work); err != nil {
		return nil, err
	}
	work.RecomputeTotals()
	s.carts[userID] = work
	return cloneCart(work), nil
}

func (s *memCartStore) DeleteCart(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

func (s *memCartStore) seed(cart *domain.Cart) {
	cart.RecomputeTotals()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.UserID] = cart
}

// memOrderStore is an in-memory OrderStore. CreateOrderFromCart shares the
// cart store so the create-then-clear coupling can be asserted.
type memOrderStore struct {
	mu     sync.Mutex
	carts  *memCartStore
	orders map[uuid.UUID]*domain.Order
}

func newMemOrderStore(carts *memCartStore) *memOrderStore {
	return &memOrderStore{carts: carts, orders: make(map[uuid.UUID]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	out := *o
	out.OrderItems = append([]domain.OrderItem(nil), o.OrderItems...)
	if o.PaymentResult != nil {
		pr := *o.PaymentResult
		out.PaymentResult = &pr
	}
	return &out
}

func (s *memOrderStore) CreateOrderFromCart(ctx context.Context, userID uuid.UUID, build func(*domain.Cart) (*domain.Order, error)) (*domain.Order, error) {
	s.carts.mu.Lock()
	defer s.carts.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}

	order, err := build(cloneCart(cart))
	if err != nil {
		return nil, err
	}

	s.orders[order.ID] = cloneOrder(order)
	cleared := domain.EmptyCart(userID)
	cleared.RecomputeTotals()
	s.carts.carts[userID] = cleared
	return cloneOrder(order), nil
}

func (s *memOrderStore) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (s *memOrderStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (s *memOrderStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		out = append(out, *cloneOrder(o))
	}
	return out, nil
}

func (s *memOrderStore) SetOrderPaid(ctx context.Context, orderID uuid.UUID, payment domain.PaymentResult) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, domain.ErrOrderAlreadyPaid
	}
	now := time.Now().UTC()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &payment
	return cloneOrder(order), nil
}

func (s *memOrderStore) SetOrderDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	now := time.Now().UTC()
	order.IsDelivered = true
	order.DeliveredAt = &now
	return cloneOrder(order), nil
}

// memCategoryStore is an in-memory CategoryStore with the unique-name
// constraint the postgres implementation enforces.
type memCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
}

func newMemCategoryStore() *memCategoryStore {
	return &memCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (s *memCategoryStore) nameTaken(name string, excluding uuid.UUID) bool {
	for _, c := range s.categories {
		if c.Name == name && c.ID != excluding {
			return true
		}
	}
	return false
}

func (s *memCategoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Category
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *memCategoryStore) GetCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

func (s *memCategoryStore) CreateCategory(ctx context.Context, params domain.CategoryParams) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(params.Name, uuid.Nil) {
		return nil, domain.Conflict("", "Category name already exists")
	}
	now := time.Now().UTC()
	c := &domain.Category{ID: uuid.New(), Name: params.Name, CreatedAt: now, UpdatedAt: now}
	s.categories[c.ID] = c
	out := *c
	return &out, nil
}

func (s *memCategoryStore) UpdateCategory(ctx context.Context, categoryID uuid.UUID, params domain.CategoryParams) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if s.nameTaken(params.Name, categoryID) {
		return nil, domain.Conflict("", "Category name already exists")
	}
	c.Name = params.Name
	c.UpdatedAt = time.Now().UTC()
	out := *c
	return &out, nil
}

func (s *memCategoryStore) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(s.categories, categoryID)
	return nil
}

// memProductStore is an in-memory ProductStore.
type memProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: make(map[uuid.UUID]*domain.Product)}
}

func (s *memProductStore) seed(p domain.Product) domain.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = &p
	return p
}

func (s *memProductStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memProductStore) GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (s *memProductStore) CreateProduct(ctx context.Context, params domain.ProductParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p := &domain.Product{
		ID:        uuid.New(),
		Name:      params.Name,
		Image:     params.Image,
		Brand:     params.Brand,
		Category:  params.Category,
		Price:     params.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products[p.ID] = p
	out := *p
	return &out, nil
}

func (s *memProductStore) UpdateProduct(ctx context.Context, productID uuid.UUID, params domain.ProductParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p.Name = params.Name
	p.Image = params.Image
	p.Brand = params.Brand
	p.Category = params.Category
	p.Price = params.Price
	p.UpdatedAt = time.Now().UTC()
	out := *p
	return &out, nil
}

func (s *memProductStore) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return domain.ErrProductNotFound
	}
	delete(s.products, productID)
	return nil
}
