package product

import (
	"time"

	domainProduct "dailypay-backend/internal/domain/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SellerSummaryResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ShopName        string    `json:"shopName"`
	ShopLogo        string    `json:"shopLogo,omitempty"`
	ShopDescription string    `json:"shopDescription,omitempty"`
	Address         string    `json:"address,omitempty"`
}

type ProductResponse struct {
	ID          uuid.UUID              `json:"id"`
	SellerID    uuid.UUID              `json:"sellerId"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	Qty         int                    `json:"qty"`
	Images      []string               `json:"images"`
	Category    *string                `json:"category"`
	Seller      *SellerSummaryResponse `json:"seller,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

func ToProductResponse(p *domainProduct.Product) *ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	resp := &ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Qty:         p.Qty,
		Images:      images,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Seller != nil {
		resp.Seller = &SellerSummaryResponse{
			ID:              p.Seller.ID,
			Name:            p.Seller.Name,
			ShopName:        p.Seller.ShopName,
			ShopLogo:        p.Seller.ShopLogo,
			ShopDescription: p.Seller.ShopDescription,
			Address:         p.Seller.Address,
		}
	}
	return resp
}

func ToProductResponses(products []*domainProduct.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}
