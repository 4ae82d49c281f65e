package memory

import (
	"context"
	"strings"
	"time"

	"dailypay-backend/internal/domain/history"
	"dailypay-backend/internal/domain/order"
	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/transaction"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productRepo struct{ s *Store }

// copyProduct must run with the store lock held; it joins the seller summary.
func (r *productRepo) copyProduct(p *product.Product) *product.Product {
	c := *p
	c.Images = append([]string(nil), p.Images...)
	c.Category = ptrCopy(p.Category)
	c.Seller = nil
	if sl, ok := r.s.sellers[p.SellerID]; ok {
		c.Seller = &product.SellerSummary{
			ID:              sl.ID,
			Name:            sl.Name,
			ShopName:        sl.ShopName,
			ShopLogo:        sl.ShopLogo,
			ShopDescription: sl.ShopDescription,
			Address:         sl.Address,
		}
	}
	return &c
}

func (r *productRepo) insert(p *product.Product) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.s.tick()
	p.CreatedAt = now
	p.UpdatedAt = now
	stored := *p
	stored.Images = append([]string(nil), p.Images...)
	stored.Category = ptrCopy(p.Category)
	stored.Seller = nil
	r.s.products[p.ID] = &stored
}

func (r *productRepo) Create(_ context.Context, p *product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.insert(p)
	return nil
}

func (r *productRepo) CreateBatch(_ context.Context, products []*product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range products {
		r.insert(p)
	}
	return nil
}

func (r *productRepo) GetByID(_ context.Context, productID uuid.UUID) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[productID]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return r.copyProduct(p), nil
}

func (r *productRepo) Update(_ context.Context, p *product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.products[p.ID]
	if !ok {
		return product.ErrProductNotFound
	}
	stored.Name = p.Name
	stored.Slug = p.Slug
	stored.Description = p.Description
	stored.Price = p.Price
	stored.Qty = p.Qty
	stored.Images = append([]string(nil), p.Images...)
	stored.Category = ptrCopy(p.Category)
	stored.UpdatedAt = r.s.tick()
	p.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *productRepo) Delete(_ context.Context, productID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[productID]; !ok {
		return product.ErrProductNotFound
	}
	delete(r.s.products, productID)
	return nil
}

func (r *productRepo) filter(limit int, keep func(p *product.Product) bool) []*product.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*product.Product, 0)
	for _, p := range r.s.products {
		if keep(p) {
			out = append(out, r.copyProduct(p))
		}
	}
	newestFirst(out, func(p *product.Product) time.Time { return p.CreatedAt })
	return limitTo(out, limit)
}

func (r *productRepo) List(_ context.Context, limit int) ([]*product.Product, error) {
	return r.filter(limit, func(*product.Product) bool { return true }), nil
}

func (r *productRepo) Search(_ context.Context, q string, limit int) ([]*product.Product, error) {
	needle := strings.ToLower(q)
	return r.filter(limit, func(p *product.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}), nil
}

func (r *productRepo) ListBySeller(_ context.Context, sellerID uuid.UUID, limit int) ([]*product.Product, error) {
	return r.filter(limit, func(p *product.Product) bool { return p.SellerID == sellerID }), nil
}

func (r *productRepo) CountBySeller(_ context.Context, sellerID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, p := range r.s.products {
		if p.SellerID == sellerID {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) ReserveStock(_ context.Context, productID uuid.UUID, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[productID]
	if !ok || p.Qty < qty {
		return product.ErrInsufficientStock
	}
	p.Qty -= qty
	return nil
}

func (r *productRepo) ReleaseStock(_ context.Context, productID uuid.UUID, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p, ok := r.s.products[productID]; ok {
		p.Qty += qty
	}
	return nil
}

type orderRepo struct{ s *Store }

func copyOrder(o *order.Order) *order.Order {
	c := *o
	c.Items = append([]order.Item(nil), o.Items...)
	return &c
}

func (r *orderRepo) Create(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := r.s.tick()
	o.CreatedAt = now
	o.UpdatedAt = now
	r.s.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, orderID uuid.UUID) (*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r *orderRepo) filter(limit int, keep func(o *order.Order) bool) []*order.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*order.Order, 0)
	for _, o := range r.s.orders {
		if keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	newestFirst(out, func(o *order.Order) time.Time { return o.CreatedAt })
	return limitTo(out, limit)
}

func (r *orderRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*order.Order, error) {
	return r.filter(limit, func(o *order.Order) bool { return o.UserID == userID }), nil
}

func (r *orderRepo) ListBySeller(_ context.Context, sellerID uuid.UUID, limit int) ([]*order.Order, error) {
	return r.filter(limit, func(o *order.Order) bool { return o.SellerID == sellerID }), nil
}

func (r *orderRepo) CountBySeller(_ context.Context, sellerID uuid.UUID) (int64, error) {
	return int64(len(r.filter(0, func(o *order.Order) bool { return o.SellerID == sellerID }))), nil
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, t *transaction.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := r.s.tick()
	t.CreatedAt = now
	t.UpdatedAt = now
	c := *t
	r.s.transactions[t.ID] = &c
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, txID uuid.UUID) (*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.transactions[txID]
	if !ok {
		return nil, transaction.ErrTransactionNotFound
	}
	c := *t
	return &c, nil
}

func matchesFilter(t *transaction.Transaction, f transaction.Filter) bool {
	if f.SellerID != nil && t.SellerID != *f.SellerID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

func (r *transactionRepo) List(_ context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*transaction.Transaction, 0)
	for _, t := range r.s.transactions {
		if matchesFilter(t, filter) {
			c := *t
			out = append(out, &c)
		}
	}
	newestFirst(out, func(t *transaction.Transaction) time.Time { return t.CreatedAt })
	return limitTo(out, filter.Limit), nil
}

func (r *transactionRepo) Count(_ context.Context, filter transaction.Filter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, t := range r.s.transactions {
		if matchesFilter(t, filter) {
			n++
		}
	}
	return n, nil
}

func (r *transactionRepo) SumSales(_ context.Context, sellerID uuid.UUID) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range r.s.transactions {
		if t.SellerID == sellerID && t.Type == transaction.TypeSale {
			total = total.Add(t.TotalAmount)
		}
	}
	return total, nil
}

func (r *transactionRepo) UpdateStatus(_ context.Context, txID uuid.UUID, from, to transaction.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.transactions[txID]
	if !ok || t.Status != from {
		return transaction.ErrStatusChanged
	}
	t.Status = to
	t.UpdatedAt = r.s.tick()
	return nil
}

type historyRepo struct{ s *Store }

func (r *historyRepo) Create(_ context.Context, e *history.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = r.s.tick()
	c := *e
	r.s.history = append(r.s.history, &c)
	return nil
}

func (r *historyRepo) ListBySeller(_ context.Context, sellerID uuid.UUID, limit int) ([]*history.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*history.Entry, 0)
	for i := len(r.s.history) - 1; i >= 0; i-- {
		if r.s.history[i].SellerID == sellerID {
			c := *r.s.history[i]
			out = append(out, &c)
		}
	}
	return limitTo(out, limit), nil
}
