package dto

import (
	"github.com/shopspring/decimal"

	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/catalog/brand"
	"bakehouse/internal/domain/catalog/product"
	"bakehouse/internal/domain/catalog/stockitem"
)

// --- Product DTOs ---

// ProductResponse contains product fields.
type ProductResponse struct {
	BaseResponse
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Description *string         `json:"description,omitempty"`
}

// FromProduct creates ProductResponse from product.Product.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		BaseResponse: FromBase(p.BaseEntity),
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     string(p.Category),
		UnitPrice:    p.UnitPrice,
		Description:  p.Description,
	}
}

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Description *string         `json:"description"`
}

// ToEntity maps the request to a new product.
func (r CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.SKU, r.Name, product.Category(r.Category), r.UnitPrice)
	p.Description = r.Description
	return p
}

// UpdateProductRequest for updating products.
type UpdateProductRequest struct {
	SKU         *string          `json:"sku"`
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Description *string          `json:"description"`
	Version     int              `json:"version" binding:"required,min=1"`
}

// ApplyTo maps set fields onto an existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.SKU != nil {
		p.SKU = *r.SKU
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = product.Category(*r.Category)
	}
	if r.UnitPrice != nil {
		p.UnitPrice = *r.UnitPrice
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	p.Version = r.Version
}

// --- Brand DTOs ---

// BrandResponse contains brand fields.
type BrandResponse struct {
	BaseResponse
	Name string `json:"name"`
}

// FromBrand creates BrandResponse from brand.Brand.
func FromBrand(b *brand.Brand) BrandResponse {
	return BrandResponse{
		BaseResponse: FromBase(b.BaseEntity),
		Name:         b.Name,
	}
}

// CreateBrandRequest for creating brands.
type CreateBrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// ToEntity maps the request to a new brand.
func (r CreateBrandRequest) ToEntity() *brand.Brand {
	return brand.New(r.Name)
}

// UpdateBrandRequest for updating brands.
type UpdateBrandRequest struct {
	Name    *string `json:"name"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps set fields onto an existing brand.
func (r UpdateBrandRequest) ApplyTo(b *brand.Brand) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	b.Version = r.Version
}

// --- StockItem DTOs ---

// StockItemResponse contains stock item fields.
type StockItemResponse struct {
	BaseResponse
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	MinQuantity decimal.Decimal `json:"minQuantity"`
}

// FromStockItem creates StockItemResponse from stockitem.StockItem.
func FromStockItem(s *stockitem.StockItem) StockItemResponse {
	return StockItemResponse{
		BaseResponse: FromBase(s.BaseEntity),
		Name:         s.Name,
		Unit:         string(s.Unit),
		MinQuantity:  s.MinQuantity,
	}
}

// CreateStockItemRequest for creating stock items.
type CreateStockItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Unit        string           `json:"unit" binding:"required"`
	MinQuantity *decimal.Decimal `json:"minQuantity"`
}

// ToEntity maps the request to a new stock item.
func (r CreateStockItemRequest) ToEntity() *stockitem.StockItem {
	s := stockitem.New(r.Name, stockitem.Unit(r.Unit))
	if r.MinQuantity != nil {
		s.MinQuantity = *r.MinQuantity
	}
	return s
}

// UpdateStockItemRequest for updating stock items.
type UpdateStockItemRequest struct {
	Name        *string          `json:"name"`
	Unit        *string          `json:"unit"`
	MinQuantity *decimal.Decimal `json:"minQuantity"`
	Version     int              `json:"version" binding:"required,min=1"`
}

// ApplyTo maps set fields onto an existing stock item.
func (r UpdateStockItemRequest) ApplyTo(s *stockitem.StockItem) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Unit != nil {
		s.Unit = stockitem.Unit(*r.Unit)
	}
	if r.MinQuantity != nil {
		s.MinQuantity = *r.MinQuantity
	}
	s.Version = r.Version
}

// --- BrandPrice DTOs ---

// BrandPriceResponse contains brand price fields.
type BrandPriceResponse struct {
	BaseResponse
	StockItemID  string          `json:"stockItemId"`
	BrandID      *string         `json:"brandId,omitempty"`
	PackageSize  decimal.Decimal `json:"packageSize"`
	PackagePrice decimal.Decimal `json:"packagePrice"`
	UnitCost     decimal.Decimal `json:"unitCost"`
}

// FromBrandPrice creates BrandPriceResponse from stockitem.BrandPrice.
func FromBrandPrice(p *stockitem.BrandPrice) BrandPriceResponse {
	resp := BrandPriceResponse{
		BaseResponse: FromBase(p.BaseEntity),
		StockItemID:  p.StockItemID.String(),
		PackageSize:  p.PackageSize,
		PackagePrice: p.PackagePrice,
		UnitCost:     p.UnitCost(),
	}
	if p.BrandID != nil {
		s := p.BrandID.String()
		resp.BrandID = &s
	}
	return resp
}

// CreateBrandPriceRequest for adding a per-brand offer to a stock item.
// The stock item comes from the URL, not the body.
type CreateBrandPriceRequest struct {
	BrandID      *string         `json:"brandId"`
	PackageSize  decimal.Decimal `json:"packageSize" binding:"required"`
	PackagePrice decimal.Decimal `json:"packagePrice"`
}

// ToEntity maps the request to a new brand price for the given stock item.
func (r CreateBrandPriceRequest) ToEntity(stockItemID id.ID) (*stockitem.BrandPrice, error) {
	p := &stockitem.BrandPrice{
		BaseEntity:   entity.NewBaseEntity(),
		StockItemID:  stockItemID,
		PackageSize:  r.PackageSize,
		PackagePrice: r.PackagePrice,
	}
	if r.BrandID != nil {
		brandID, err := id.Parse(*r.BrandID)
		if err != nil {
			return nil, err
		}
		p.BrandID = &brandID
	}
	return p, nil
}

// --- StockMovement DTOs ---

// StockMovementResponse contains stock movement fields.
type StockMovementResponse struct {
	BaseResponse
	StockItemID string          `json:"stockItemId"`
	Delta       decimal.Decimal `json:"delta"`
	Reason      string          `json:"reason"`
}

// FromStockMovement creates StockMovementResponse from stockitem.StockMovement.
func FromStockMovement(m *stockitem.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		BaseResponse: FromBase(m.BaseEntity),
		StockItemID:  m.StockItemID.String(),
		Delta:        m.Delta,
		Reason:       m.Reason,
	}
}

// CreateStockMovementRequest for recording a quantity change. The stock item
// comes from the URL, not the body.
type CreateStockMovementRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

// ToEntity maps the request to a new movement of the given stock item.
func (r CreateStockMovementRequest) ToEntity(stockItemID id.ID) *stockitem.StockMovement {
	return &stockitem.StockMovement{
		BaseEntity:  entity.NewBaseEntity(),
		StockItemID: stockItemID,
		Delta:       r.Delta,
		Reason:      r.Reason,
	}
}
