package product

import (
	"context"

	domainProduct "dailypay-backend/internal/domain/product"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
)

const (
	listLimit      = 200
	searchLimit    = 100
	maxQueryLength = 100
)

// Service serves the public catalogue
type Service struct {
	productRepo domainProduct.Repository
}

func NewService(productRepo domainProduct.Repository) *Service {
	return &Service{productRepo: productRepo}
}

func (s *Service) List(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.List(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Search is a plain case-insensitive substring match on name and description.
// An empty query lists the catalogue.
func (s *Service) Search(ctx context.Context, q string) ([]*ProductResponse, error) {
	q = utils.SanitizeQuery(q, maxQueryLength)
	products, err := s.productRepo.Search(ctx, q, searchLimit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

func (s *Service) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}
