package catalog

import (
	"context"
	"errors"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// cugAttempts bounds the random code generation retry loop
const cugAttempts = 10

// QuotaChecker gates product creation and identifies excess products.
// This decouples ProductService from the subscription services.
type QuotaChecker interface {
	CheckProductQuota(ctx context.Context, siteID uuid.UUID) error
	ExcessProductIDs(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	quota        QuotaChecker
	eanPrefix    string
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	quota QuotaChecker,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		quota:        quota,
	}
}

// SetBarcodePrefix sets the prefix used for generated EANs when the
// request does not carry one
func (s *ProductService) SetBarcodePrefix(prefix string) {
	s.eanPrefix = prefix
}

// Create creates a new product after the quota check
func (s *ProductService) Create(ctx context.Context, siteID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.quota.CheckProductQuota(ctx, siteID); err != nil {
		return nil, err
	}

	cug := req.CUG
	if cug == "" {
		generated, err := s.generateCUG(ctx)
		if err != nil {
			return nil, err
		}
		cug = generated
	} else {
		exists, err := s.productRepo.ExistsByCUG(ctx, cug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this CUG already exists")
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForSite(ctx, *req.CategoryID, siteID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}
	if req.BrandID != nil {
		if _, err := s.brandRepo.FindByIDForSite(ctx, *req.BrandID, siteID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return nil, err
		}
	}

	purchase := decimal.Zero
	selling := decimal.Zero
	if req.PurchasePrice != nil {
		purchase = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		selling = *req.SellingPrice
	}

	product, err := catalog.NewProduct(siteID, cug, req.Name, purchase, selling)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		product.CreatedBy = req.CreatedBy
	}
	if req.Description != "" {
		if err := product.UpdateDetails(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Unit != "" {
		if err := product.SetUnit(req.Unit); err != nil {
			return nil, err
		}
	}
	if req.AlertThreshold != nil {
		if err := product.SetAlertThreshold(*req.AlertThreshold); err != nil {
			return nil, err
		}
	}
	if req.Barcode != "" {
		if err := s.checkEANAvailable(ctx, req.Barcode, product.ID); err != nil {
			return nil, err
		}
		if err := product.SetLegacyBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}
	product.SetCategory(req.CategoryID)
	product.SetBrand(req.BrandID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product scoped to the site
func (s *ProductService) GetByID(ctx context.Context, siteID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves a filtered product page. Excess products are excluded
// unless the caller asks for them explicitly.
func (s *ProductService) List(ctx context.Context, siteID uuid.UUID, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	domainFilter := s.buildFilter(filter)

	if !filter.IncludeExcess {
		excess, err := s.quota.ExcessProductIDs(ctx, siteID)
		if err != nil {
			return shared.Paginated[ProductResponse]{}, err
		}
		if len(excess) > 0 {
			domainFilter.Filters["exclude_ids"] = excess
		}
	}

	var page shared.Paginated[*catalog.Product]
	var err error
	if filter.LowStock {
		page, err = s.productRepo.FindLowStockForSite(ctx, siteID, domainFilter)
	} else {
		page, err = s.productRepo.FindAllForSite(ctx, siteID, domainFilter)
	}
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return toProductPage(page), nil
}

// ListExcess retrieves only the products beyond the site's quota. This
// is the administrative view; default listings hide these records.
func (s *ProductService) ListExcess(ctx context.Context, siteID uuid.UUID, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	excess, err := s.quota.ExcessProductIDs(ctx, siteID)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	if len(excess) == 0 {
		return shared.NewPaginated([]ProductResponse{}, 0, 1, shared.DefaultFilter().PageSize), nil
	}

	domainFilter := s.buildFilter(filter)
	domainFilter.Filters["only_ids"] = excess
	page, err := s.productRepo.FindAllForSite(ctx, siteID, domainFilter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return toProductPage(page), nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, siteID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.UpdateDetails(name, description); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		if err := product.SetUnit(*req.Unit); err != nil {
			return nil, err
		}
	}
	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchase := product.PurchasePrice
		selling := product.SellingPrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if err := product.SetPrices(purchase, selling); err != nil {
			return nil, err
		}
	}
	if req.AlertThreshold != nil {
		if err := product.SetAlertThreshold(*req.AlertThreshold); err != nil {
			return nil, err
		}
	}
	if req.Barcode != nil {
		if *req.Barcode != "" && *req.Barcode != product.LegacyBarcode {
			if err := s.checkEANAvailable(ctx, *req.Barcode, product.ID); err != nil {
				return nil, err
			}
		}
		if err := product.SetLegacyBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForSite(ctx, *req.CategoryID, siteID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.BrandID != nil {
		if _, err := s.brandRepo.FindByIDForSite(ctx, *req.BrandID, siteID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return nil, err
		}
		product.SetBrand(req.BrandID)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// SetActive toggles whether a product appears in POS lookups. The
// record and its stock history stay intact either way.
func (s *ProductService) SetActive(ctx context.Context, siteID, productID uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product without stock history. Products with ledger
// entries are deactivated instead, preserving the history.
func (s *ProductService) Delete(ctx context.Context, siteID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return err
	}
	hasHistory, err := s.productRepo.HasStockHistory(ctx, product.ID)
	if err != nil {
		return err
	}
	if hasHistory {
		product.Deactivate()
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		return shared.ErrProtectedDelete
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// Scan resolves a scanned code, trying the CUG first for 5-digit
// numeric input, then the EAN lookup across barcode children and the
// legacy field
func (s *ProductService) Scan(ctx context.Context, siteID uuid.UUID, code string) (*ScanResponse, error) {
	if len(code) == 5 {
		if product, err := s.productRepo.FindByCUG(ctx, code); err == nil {
			if product.SiteID != siteID {
				return nil, shared.ErrNotFound
			}
			return &ScanResponse{MatchedBy: "cug", Product: ToProductResponse(product)}, nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	product, err := s.productRepo.FindByEAN(ctx, code)
	if err != nil {
		return nil, err
	}
	if product.SiteID != siteID {
		return nil, shared.ErrNotFound
	}
	return &ScanResponse{MatchedBy: "ean", Product: ToProductResponse(product)}, nil
}

// AddBarcode attaches a barcode after the installation-wide uniqueness
// check
func (s *ProductService) AddBarcode(ctx context.Context, siteID, productID uuid.UUID, req AddBarcodeRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEANAvailable(ctx, req.EAN, product.ID); err != nil {
		return nil, err
	}
	if _, err := product.AddBarcode(req.EAN, req.Notes); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GenerateBarcode derives an EAN-13 from the product's CUG and
// registers it
func (s *ProductService) GenerateBarcode(ctx context.Context, siteID, productID uuid.UUID, req GenerateBarcodeRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return nil, err
	}
	prefix := req.Prefix
	if prefix == "" {
		prefix = s.eanPrefix
	}
	ean, err := catalog.GenerateEAN13(product.CUG, prefix)
	if err != nil {
		return nil, err
	}
	if err := s.checkEANAvailable(ctx, ean, product.ID); err != nil {
		return nil, err
	}
	if _, err := product.AddBarcode(ean, "generated"); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// RemoveBarcode detaches a barcode
func (s *ProductService) RemoveBarcode(ctx context.Context, siteID, productID, barcodeID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return nil, err
	}
	if err := product.RemoveBarcode(barcodeID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// SetPrimaryBarcode marks a barcode primary, clearing the flag on the
// others
func (s *ProductService) SetPrimaryBarcode(ctx context.Context, siteID, productID, barcodeID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSite(ctx, productID, siteID)
	if err != nil {
		return nil, err
	}
	if err := product.SetPrimaryBarcode(barcodeID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) generateCUG(ctx context.Context) (string, error) {
	for i := 0; i < cugAttempts; i++ {
		cug := catalog.RandomCUG()
		exists, err := s.productRepo.ExistsByCUG(ctx, cug)
		if err != nil {
			return "", err
		}
		if !exists {
			return cug, nil
		}
	}
	return "", shared.NewDomainError("CUG_EXHAUSTED", "Could not generate a unique CUG")
}

func (s *ProductService) checkEANAvailable(ctx context.Context, ean string, productID uuid.UUID) error {
	inUse, err := s.productRepo.EANInUse(ctx, ean, productID)
	if err != nil {
		return err
	}
	if inUse {
		return shared.ErrDuplicateBarcode
	}
	return nil
}

func (s *ProductService) buildFilter(filter ProductListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.BrandID != nil {
		domainFilter.Filters["brand_id"] = *filter.BrandID
	}
	return domainFilter
}

func toProductPage(page shared.Paginated[*catalog.Product]) shared.Paginated[ProductResponse] {
	items := make([]ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, ToProductResponse(p))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
}
