package service

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/dukatech/netstore-backend/internal/app/repository"
	"github.com/dukatech/netstore-backend/pkg/logger"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrInvalidSortKey     = errors.New("invalid sort key")
	ErrInvalidStockStatus = errors.New("invalid stock status")
)

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// ParseSortKey validates a sort key from the query string; empty means default.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", SortDefault:
		return SortDefault, nil
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortKey(s), nil
	}
	return "", ErrInvalidSortKey
}

const defaultPerPage = 12

// CatalogQuery is the combined filter/sort/pagination criteria for one
// catalog read. It is ephemeral: derived per request and never persisted.
// The page-resets-on-filter-change invariant belongs to the caller; the
// service only clamps the page into the valid range.
type CatalogQuery struct {
	Search   string
	Brands   []string
	Statuses []model.StockStatus
	PriceMin float64
	PriceMax float64 // non-positive means unbounded
	Sort     SortKey
	PerPage  int // defaults to 12
	Page     int // 1-based
}

// PagedResult carries one page of listings plus the numbers the storefront
// needs for its "Showing X-Y of Z" strip and pager.
type PagedResult struct {
	Items      []model.Product `json:"items"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	From       int             `json:"from"`
	To         int             `json:"to"`
}

// FilterSummary lists the values the filter sidebar offers.
type FilterSummary struct {
	Brands   []string            `json:"brands"`
	Statuses []model.StockStatus `json:"statuses"`
}

// CatalogService is the catalog view model: it applies the query pipeline
// over the static listings and tracks the per-session transient quantity
// selector that feeds add-to-cart.
type CatalogService interface {
	Query(q CatalogQuery) PagedResult
	GetProductByID(id string) (*model.Product, error)
	Filters() FilterSummary
	QuantityFor(sessionID, productID string) int
	IncreaseSelection(sessionID, productID string) int
	DecreaseSelection(sessionID, productID string) int
}

type catalogService struct {
	catalogRepo repository.CatalogRepository

	mu         sync.Mutex
	selections map[string]map[string]int
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		selections:  make(map[string]map[string]int),
	}
}

// Query runs the fixed pipeline: price range, brand set, stock set, free-text
// match, sort, paginate. Empty brand/stock sets mean unrestricted, not
// exclude-all; blank search skips the text filter.
func (s *catalogService) Query(q CatalogQuery) PagedResult {
	logger.Debug("Querying catalog", map[string]interface{}{
		"search":    q.Search,
		"brands":    q.Brands,
		"statuses":  q.Statuses,
		"price_min": q.PriceMin,
		"price_max": q.PriceMax,
		"sort":      q.Sort,
		"per_page":  q.PerPage,
		"page":      q.Page,
	})

	min, max := q.PriceMin, q.PriceMax
	if max <= 0 {
		max = math.MaxFloat64
	}
	if min > max {
		min, max = max, min
	}

	filtered := make([]model.Product, 0)
	for _, p := range s.catalogRepo.All() {
		if p.Price < min || p.Price > max {
			continue
		}
		if len(q.Brands) > 0 && !containsString(q.Brands, p.Brand) {
			continue
		}
		if len(q.Statuses) > 0 && !containsStatus(q.Statuses, p.Status) {
			continue
		}
		filtered = append(filtered, p)
	}

	if needle := strings.TrimSpace(q.Search); needle != "" {
		needle = strings.ToLower(needle)
		matched := filtered[:0]
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Brand), needle) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	sortProducts(filtered, q.Sort)

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	totalCount := len(filtered)
	totalPages := int(math.Ceil(float64(totalCount) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	from, to := 0, 0
	if totalCount > 0 {
		from = start + 1
		to = end
	}

	result := PagedResult{
		Items:      filtered[start:end],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
		From:       from,
		To:         to,
	}

	logger.Info("Catalog queried", map[string]interface{}{
		"total_count": result.TotalCount,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
	return result
}

// sortProducts orders in place; callers pass a slice they own (the pipeline
// already copies out of the repository), so copy-on-sort holds for the shared
// catalog. Default keeps input order; name sorts are locale-aware.
func sortProducts(products []model.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortNameDesc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) > 0
		})
	}
}

func containsString(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func containsStatus(set []model.StockStatus, value model.StockStatus) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func (s *catalogService) GetProductByID(id string) (*model.Product, error) {
	product, err := s.catalogRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) Filters() FilterSummary {
	return FilterSummary{
		Brands:   s.catalogRepo.Brands(),
		Statuses: []model.StockStatus{model.StockOnSale, model.StockInStock, model.StockBackorder},
	}
}

// QuantityFor returns the transient selector value for the product, default 1.
// The selector is scoped to the catalog view and never persisted; add-to-cart
// reads it without mutating it.
func (s *catalogService) QuantityFor(sessionID, productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty, ok := s.selections[sessionID][productID]; ok {
		return qty
	}
	return 1
}

func (s *catalogService) IncreaseSelection(sessionID, productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.selections[sessionID]
	if !ok {
		m = make(map[string]int)
		s.selections[sessionID] = m
	}
	qty, ok := m[productID]
	if !ok {
		qty = 1
	}
	qty++
	m[productID] = qty
	return qty
}

// DecreaseSelection clamps at a floor of 1; the selector never drops below it.
func (s *catalogService) DecreaseSelection(sessionID, productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.selections[sessionID]
	if !ok {
		m = make(map[string]int)
		s.selections[sessionID] = m
	}
	qty, ok := m[productID]
	if !ok {
		qty = 1
	}
	if qty > 1 {
		qty--
	}
	m[productID] = qty
	return qty
}
