package handlers

import (
	"bakehouse/internal/domain/catalog/brand"
	"bakehouse/internal/infrastructure/http/v1/dto"
)

// BrandHTTPHandler shortens the generic signature.
type BrandHTTPHandler = LifecycleHandler[
	*brand.Brand,
	dto.CreateBrandRequest,
	dto.UpdateBrandRequest,
]

// NewBrandHandler creates the brand handler. Brands are plain lifecycle:
// no business key, no cascade dependents.
func NewBrandHandler(base *BaseHandler, service *brand.Service) *BrandHTTPHandler {
	return NewLifecycleHandler(base, LifecycleHandlerConfig[
		*brand.Brand,
		dto.CreateBrandRequest,
		dto.UpdateBrandRequest,
	]{
		Service:    service.LifecycleService,
		EntityName: "brand",
		MapCreateDTO: func(req dto.CreateBrandRequest) (*brand.Brand, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateBrandRequest, existing *brand.Brand) *brand.Brand {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(b *brand.Brand) any {
			return dto.FromBrand(b)
		},
	})
}
