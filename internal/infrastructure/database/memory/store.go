// Package memory keeps every repository in process memory behind one mutex.
// It backs DB_DRIVER=memory and the usecase and HTTP tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"dailypay-backend/internal/domain/history"
	"dailypay-backend/internal/domain/order"
	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/domain/user"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]*user.User
	sellers      map[uuid.UUID]*seller.Seller
	products     map[uuid.UUID]*product.Product
	orders       map[uuid.UUID]*order.Order
	transactions map[uuid.UUID]*transaction.Transaction
	history      []*history.Entry
	now          func() time.Time
	last         time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*user.User),
		sellers:      make(map[uuid.UUID]*seller.Seller),
		products:     make(map[uuid.UUID]*product.Product),
		orders:       make(map[uuid.UUID]*order.Order),
		transactions: make(map[uuid.UUID]*transaction.Transaction),
		now:          time.Now,
	}
}

func (s *Store) Users() user.Repository               { return &userRepo{s} }
func (s *Store) Sellers() seller.Repository           { return &sellerRepo{s} }
func (s *Store) Products() product.Repository         { return &productRepo{s} }
func (s *Store) Orders() order.Repository             { return &orderRepo{s} }
func (s *Store) Transactions() transaction.Repository { return &transactionRepo{s} }
func (s *Store) History() history.Repository          { return &historyRepo{s} }

// tick returns a strictly increasing timestamp so newest-first ordering is
// stable for records written within the same clock reading. Callers hold mu.
func (s *Store) tick() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

func limitTo[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func ptrCopy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
