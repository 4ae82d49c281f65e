package seller

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/domain/history"
	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/logger"
	productUsecase "dailypay-backend/internal/usecase/product"
	appErrors "dailypay-backend/pkg/errors"
	"dailypay-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const maxImportRows = 1000

var errNameAndPrice = appErrors.Validation("Name and price required", nil)

func productSlug(name string, id uuid.UUID) string {
	return slug.Make(name) + "-" + id.String()[:8]
}

func (s *Service) ListProducts(ctx context.Context, sellerID uuid.UUID) ([]*productUsecase.ProductResponse, error) {
	products, err := s.productRepo.ListBySeller(ctx, sellerID, productListLimit)
	if err != nil {
		return nil, err
	}
	return productUsecase.ToProductResponses(products), nil
}

func (s *Service) CreateProduct(ctx context.Context, sellerID uuid.UUID, req *ProductRequest) (*productUsecase.ProductResponse, error) {
	sanitizeProductRequest(req)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}
	if req.Name == nil || *req.Name == "" || req.Price == nil {
		return nil, errNameAndPrice
	}
	if req.Price.IsNegative() {
		return nil, appErrors.Validation("Invalid price", nil)
	}

	p := &product.Product{
		ID:       uuid.New(),
		SellerID: sellerID,
		Name:     *req.Name,
		Price:    req.Price.Round(2),
		Qty:      1,
		Images:   req.Images,
		Category: req.Category,
	}
	p.Slug = productSlug(p.Name, p.ID)
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Qty != nil && *req.Qty > 0 {
		p.Qty = *req.Qty
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.record(ctx, sellerID, history.ActionProductCreated, p.Name)

	logger.Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("event", "product_created"),
	)
	return productUsecase.ToProductResponse(p), nil
}

// UpdateProduct applies the non-nil fields of req to a product the seller owns.
func (s *Service) UpdateProduct(ctx context.Context, caller auth.Identity, productID uuid.UUID, req *ProductRequest) (*productUsecase.ProductResponse, error) {
	sanitizeProductRequest(req)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationError(err)
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(p.SellerID, caller); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errNameAndPrice
		}
		if *req.Name != p.Name {
			p.Name = *req.Name
			p.Slug = productSlug(p.Name, p.ID)
		}
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, appErrors.Validation("Invalid price", nil)
		}
		p.Price = req.Price.Round(2)
	}
	if req.Qty != nil {
		p.Qty = *req.Qty
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Category != nil {
		p.Category = req.Category
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.record(ctx, caller.AccountID, history.ActionProductUpdated, p.Name)

	return productUsecase.ToProductResponse(p), nil
}

func (s *Service) DeleteProduct(ctx context.Context, caller auth.Identity, productID uuid.UUID) error {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := auth.RequireOwner(p.SellerID, caller); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.record(ctx, caller.AccountID, history.ActionProductDeleted, p.Name)

	logger.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("seller_id", caller.AccountID.String()),
		zap.String("event", "product_deleted"),
	)
	return nil
}

// ImportProducts reads the first sheet of an xlsx workbook. Row one is a
// header; columns are name, category, price, description and an optional qty.
// Bad rows are skipped and reported; good rows are inserted together.
func (s *Service) ImportProducts(ctx context.Context, sellerID uuid.UUID, r io.Reader) (*ImportResponse, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, appErrors.Validation("Invalid Excel file", err)
	}
	defer func() { _ = book.Close() }()

	sheet := book.GetSheetName(0)
	if sheet == "" {
		return nil, appErrors.Validation("Workbook has no sheets", nil)
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, appErrors.Validation("Failed to read sheet", err)
	}
	if len(rows)-1 > maxImportRows {
		return nil, appErrors.Validation(fmt.Sprintf("At most %d rows can be imported at once", maxImportRows), nil)
	}

	resp := &ImportResponse{Skipped: []ImportRowError{}}
	var products []*product.Product

	for i, row := range rows {
		if i == 0 {
			continue
		}
		p, reason := parseImportRow(row)
		if reason != "" {
			resp.Skipped = append(resp.Skipped, ImportRowError{Row: i + 1, Reason: reason})
			continue
		}
		p.ID = uuid.New()
		p.SellerID = sellerID
		p.Slug = productSlug(p.Name, p.ID)
		products = append(products, p)
	}

	if len(products) > 0 {
		if err := s.productRepo.CreateBatch(ctx, products); err != nil {
			return nil, err
		}
		resp.Imported = len(products)
		s.record(ctx, sellerID, history.ActionProductsImported, fmt.Sprintf("%d products", resp.Imported))
	}

	logger.Info("Products imported",
		zap.String("seller_id", sellerID.String()),
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", len(resp.Skipped)),
		zap.String("event", "products_imported"),
	)
	return resp, nil
}

func parseImportRow(row []string) (*product.Product, string) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name := utils.SanitizeString(cell(0))
	if name == "" {
		return nil, "missing name"
	}
	price, err := decimal.NewFromString(cell(2))
	if err != nil || price.IsNegative() {
		return nil, "invalid price"
	}

	p := &product.Product{
		Name:        name,
		Price:       price.Round(2),
		Description: utils.SanitizeText(cell(3)),
		Qty:         1,
	}
	if category := utils.SanitizeString(cell(1)); category != "" {
		p.Category = &category
	}
	if raw := cell(4); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			return nil, "invalid qty"
		}
		p.Qty = qty
	}
	return p, ""
}

func sanitizeProductRequest(req *ProductRequest) {
	if req.Name != nil {
		v := utils.SanitizeString(*req.Name)
		req.Name = &v
	}
	if req.Description != nil {
		v := utils.SanitizeText(*req.Description)
		req.Description = &v
	}
	if req.Category != nil {
		v := utils.SanitizeString(*req.Category)
		if v == "" {
			req.Category = nil
		} else {
			req.Category = &v
		}
	}
	for i, img := range req.Images {
		req.Images[i] = strings.TrimSpace(img)
	}
}
