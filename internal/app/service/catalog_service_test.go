package service

import (
	"testing"

	"github.com/dukatech/netstore-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService() CatalogService {
	return NewCatalogService(testCatalog())
}

func productIDs(products []model.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestCatalogService_Query_Unfiltered(t *testing.T) {
	result := newTestCatalogService().Query(CatalogQuery{})

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, []string{"p1", "p2", "p3"}, productIDs(result.Items))
	assert.Equal(t, 1, result.From)
	assert.Equal(t, 3, result.To)
}

func TestCatalogService_Query_PriceRangeInclusive(t *testing.T) {
	result := newTestCatalogService().Query(CatalogQuery{PriceMin: 1000, PriceMax: 5000})

	assert.Equal(t, []string{"p1", "p2"}, productIDs(result.Items))
}

func TestCatalogService_Query_PriceRangeSwapsInvertedBounds(t *testing.T) {
	result := newTestCatalogService().Query(CatalogQuery{PriceMin: 6000, PriceMax: 1000})

	assert.Equal(t, []string{"p1", "p2"}, productIDs(result.Items))
}

func TestCatalogService_Query_BrandFilter(t *testing.T) {
	svc := newTestCatalogService()

	result := svc.Query(CatalogQuery{Brands: []string{"BDCOM"}})
	assert.Equal(t, []string{"p1", "p3"}, productIDs(result.Items))

	// Empty set is unrestricted, not exclude-all.
	result = svc.Query(CatalogQuery{Brands: []string{}})
	assert.Equal(t, 3, result.TotalCount)
}

func TestCatalogService_Query_StatusFilter(t *testing.T) {
	result := newTestCatalogService().Query(CatalogQuery{
		Statuses: []model.StockStatus{model.StockOnSale},
	})

	assert.Equal(t, []string{"p3"}, productIDs(result.Items))
}

func TestCatalogService_Query_SearchCaseInsensitive(t *testing.T) {
	svc := newTestCatalogService()

	assert.Equal(t, []string{"p3"}, productIDs(svc.Query(CatalogQuery{Search: "ROUTER"}).Items))
	assert.Equal(t, []string{"p2"}, productIDs(svc.Query(CatalogQuery{Search: "himax"}).Items))
	assert.Equal(t, 3, svc.Query(CatalogQuery{Search: "   "}).TotalCount)
}

func TestCatalogService_Query_Sorts(t *testing.T) {
	svc := newTestCatalogService()

	tests := []struct {
		name string
		sort SortKey
		want []string
	}{
		{"default keeps catalog order", SortDefault, []string{"p1", "p2", "p3"}},
		{"price ascending", SortPriceAsc, []string{"p1", "p2", "p3"}},
		{"price descending", SortPriceDesc, []string{"p3", "p2", "p1"}},
		{"name ascending", SortNameAsc, []string{"p1", "p2", "p3"}},
		{"name descending", SortNameDesc, []string{"p3", "p2", "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Query(CatalogQuery{Sort: tt.sort})
			assert.Equal(t, tt.want, productIDs(result.Items))
		})
	}
}

func TestCatalogService_Query_FilterSortPaginateCombined(t *testing.T) {
	// Range [0, 6000] keeps p1 (1000) and p2 (5000); price-desc orders
	// [p2, p1]; page size 1, page 2 lands on p1.
	result := newTestCatalogService().Query(CatalogQuery{
		PriceMax: 6000,
		Sort:     SortPriceDesc,
		PerPage:  1,
		Page:     2,
	})

	assert.Equal(t, []string{"p1"}, productIDs(result.Items))
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 2, result.From)
	assert.Equal(t, 2, result.To)
}

func TestCatalogService_Query_PageClampedIntoRange(t *testing.T) {
	svc := newTestCatalogService()

	result := svc.Query(CatalogQuery{PerPage: 2, Page: 99})
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, []string{"p3"}, productIDs(result.Items))

	result = svc.Query(CatalogQuery{PerPage: 2, Page: -5})
	assert.Equal(t, 1, result.Page)
}

func TestCatalogService_Query_EmptyResult(t *testing.T) {
	result := newTestCatalogService().Query(CatalogQuery{Search: "no such product"})

	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, result.From)
	assert.Equal(t, 0, result.To)
	assert.Empty(t, result.Items)
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortDefault, key)

	key, err = ParseSortKey("price-desc")
	require.NoError(t, err)
	assert.Equal(t, SortPriceDesc, key)

	_, err = ParseSortKey("rating-desc")
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestCatalogService_GetProductByID(t *testing.T) {
	svc := newTestCatalogService()

	product, err := svc.GetProductByID("p3")
	require.NoError(t, err)
	assert.True(t, product.OnSale())
	assert.Equal(t, 18, product.DiscountPercent()) // round((11000-9000)/11000*100)

	_, err = svc.GetProductByID("p999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_Filters(t *testing.T) {
	summary := newTestCatalogService().Filters()

	assert.Equal(t, []string{"BDCOM", "Himax"}, summary.Brands)
	assert.Equal(t, []model.StockStatus{model.StockOnSale, model.StockInStock, model.StockBackorder}, summary.Statuses)
}

func TestCatalogService_QuantitySelector(t *testing.T) {
	svc := newTestCatalogService()

	assert.Equal(t, 1, svc.QuantityFor("s1", "p1"))
	assert.Equal(t, 2, svc.IncreaseSelection("s1", "p1"))
	assert.Equal(t, 3, svc.IncreaseSelection("s1", "p1"))
	assert.Equal(t, 2, svc.DecreaseSelection("s1", "p1"))
	assert.Equal(t, 2, svc.QuantityFor("s1", "p1"))

	// Other sessions and products are untouched.
	assert.Equal(t, 1, svc.QuantityFor("s2", "p1"))
	assert.Equal(t, 1, svc.QuantityFor("s1", "p2"))
}

func TestCatalogService_QuantitySelector_FloorOfOne(t *testing.T) {
	svc := newTestCatalogService()

	assert.Equal(t, 1, svc.DecreaseSelection("s1", "p1"))
	assert.Equal(t, 1, svc.DecreaseSelection("s1", "p1"))
	assert.Equal(t, 1, svc.QuantityFor("s1", "p1"))
}
