package handlers

import (
	"context"
	"errors"

	"store-admin-service/internal/auth"
	"store-admin-service/internal/billboards"
	"store-admin-service/internal/categories"
	"store-admin-service/internal/colors"
	"store-admin-service/internal/orders"
	"store-admin-service/internal/products"
	"store-admin-service/internal/sizes"
	"store-admin-service/internal/tenants"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var errMockDB = errors.New("database unavailable")

// mockStores implements Stores for testing
type mockStores struct {
	InsertStoreFunc      func(ctx context.Context, userID string, ns tenants.NewStore) (tenants.Store, error)
	ListStoresByUserFunc func(ctx context.Context, userID string) ([]tenants.Store, error)
	StoreOwnedByFunc     func(ctx context.Context, storeID, userID string) (bool, error)
	UpdateStoreFunc      func(ctx context.Context, storeID, userID, name string) (tenants.Store, error)
	DeleteStoreFunc      func(ctx context.Context, storeID, userID string) (tenants.Store, error)
}

func (m *mockStores) InsertStore(ctx context.Context, userID string, ns tenants.NewStore) (tenants.Store, error) {
	if m.InsertStoreFunc != nil {
		return m.InsertStoreFunc(ctx, userID, ns)
	}
	return tenants.Store{}, errMockDB
}

func (m *mockStores) ListStoresByUser(ctx context.Context, userID string) ([]tenants.Store, error) {
	if m.ListStoresByUserFunc != nil {
		return m.ListStoresByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStores) StoreOwnedBy(ctx context.Context, storeID, userID string) (bool, error) {
	if m.StoreOwnedByFunc != nil {
		return m.StoreOwnedByFunc(ctx, storeID, userID)
	}
	return true, nil
}

func (m *mockStores) UpdateStore(ctx context.Context, storeID, userID, name string) (tenants.Store, error) {
	if m.UpdateStoreFunc != nil {
		return m.UpdateStoreFunc(ctx, storeID, userID, name)
	}
	return tenants.Store{}, errMockDB
}

func (m *mockStores) DeleteStore(ctx context.Context, storeID, userID string) (tenants.Store, error) {
	if m.DeleteStoreFunc != nil {
		return m.DeleteStoreFunc(ctx, storeID, userID)
	}
	return tenants.Store{}, errMockDB
}

// mockBillboards implements Billboards for testing
type mockBillboards struct {
	InsertBillboardFunc  func(ctx context.Context, storeID string, nb billboards.NewBillboard) (billboards.Billboard, error)
	GetBillboardByIDFunc func(ctx context.Context, storeID, billboardID string) (billboards.Billboard, error)
	ListBillboardsFunc   func(ctx context.Context, storeID string) ([]billboards.Billboard, error)
	UpdateBillboardFunc  func(ctx context.Context, storeID, billboardID string, nb billboards.NewBillboard) (billboards.Billboard, error)
	DeleteBillboardFunc  func(ctx context.Context, storeID, billboardID string) (billboards.Billboard, error)
}

func (m *mockBillboards) InsertBillboard(ctx context.Context, storeID string, nb billboards.NewBillboard) (billboards.Billboard, error) {
	if m.InsertBillboardFunc != nil {
		return m.InsertBillboardFunc(ctx, storeID, nb)
	}
	return billboards.Billboard{}, errMockDB
}

func (m *mockBillboards) GetBillboardByID(ctx context.Context, storeID, billboardID string) (billboards.Billboard, error) {
	if m.GetBillboardByIDFunc != nil {
		return m.GetBillboardByIDFunc(ctx, storeID, billboardID)
	}
	return billboards.Billboard{}, errMockDB
}

func (m *mockBillboards) ListBillboards(ctx context.Context, storeID string) ([]billboards.Billboard, error) {
	if m.ListBillboardsFunc != nil {
		return m.ListBillboardsFunc(ctx, storeID)
	}
	return nil, nil
}

func (m *mockBillboards) UpdateBillboard(ctx context.Context, storeID, billboardID string, nb billboards.NewBillboard) (billboards.Billboard, error) {
	if m.UpdateBillboardFunc != nil {
		return m.UpdateBillboardFunc(ctx, storeID, billboardID, nb)
	}
	return billboards.Billboard{}, errMockDB
}

func (m *mockBillboards) DeleteBillboard(ctx context.Context, storeID, billboardID string) (billboards.Billboard, error) {
	if m.DeleteBillboardFunc != nil {
		return m.DeleteBillboardFunc(ctx, storeID, billboardID)
	}
	return billboards.Billboard{}, errMockDB
}

// mockCategories implements Categories for testing
type mockCategories struct {
	InsertCategoryFunc  func(ctx context.Context, storeID string, nc categories.NewCategory) (categories.Category, error)
	GetCategoryByIDFunc func(ctx context.Context, storeID, categoryID string) (categories.Category, error)
	ListCategoriesFunc  func(ctx context.Context, storeID string) ([]categories.Category, error)
	UpdateCategoryFunc  func(ctx context.Context, storeID, categoryID string, nc categories.NewCategory) (categories.Category, error)
	DeleteCategoryFunc  func(ctx context.Context, storeID, categoryID string) (categories.Category, error)
}

func (m *mockCategories) InsertCategory(ctx context.Context, storeID string, nc categories.NewCategory) (categories.Category, error) {
	if m.InsertCategoryFunc != nil {
		return m.InsertCategoryFunc(ctx, storeID, nc)
	}
	return categories.Category{}, errMockDB
}

func (m *mockCategories) GetCategoryByID(ctx context.Context, storeID, categoryID string) (categories.Category, error) {
	if m.GetCategoryByIDFunc != nil {
		return m.GetCategoryByIDFunc(ctx, storeID, categoryID)
	}
	return categories.Category{}, errMockDB
}

func (m *mockCategories) ListCategories(ctx context.Context, storeID string) ([]categories.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, storeID)
	}
	return nil, nil
}

func (m *mockCategories) UpdateCategory(ctx context.Context, storeID, categoryID string, nc categories.NewCategory) (categories.Category, error) {
	if m.UpdateCategoryFunc != nil {
		return m.UpdateCategoryFunc(ctx, storeID, categoryID, nc)
	}
	return categories.Category{}, errMockDB
}

func (m *mockCategories) DeleteCategory(ctx context.Context, storeID, categoryID string) (categories.Category, error) {
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, storeID, categoryID)
	}
	return categories.Category{}, errMockDB
}

// mockSizes implements Sizes for testing
type mockSizes struct {
	InsertSizeFunc  func(ctx context.Context, storeID string, ns sizes.NewSize) (sizes.Size, error)
	GetSizeByIDFunc func(ctx context.Context, storeID, sizeID string) (sizes.Size, error)
	ListSizesFunc   func(ctx context.Context, storeID string) ([]sizes.Size, error)
	UpdateSizeFunc  func(ctx context.Context, storeID, sizeID string, ns sizes.NewSize) (sizes.Size, error)
	DeleteSizeFunc  func(ctx context.Context, storeID, sizeID string) (sizes.Size, error)
}

func (m *mockSizes) InsertSize(ctx context.Context, storeID string, ns sizes.NewSize) (sizes.Size, error) {
	if m.InsertSizeFunc != nil {
		return m.InsertSizeFunc(ctx, storeID, ns)
	}
	return sizes.Size{}, errMockDB
}

func (m *mockSizes) GetSizeByID(ctx context.Context, storeID, sizeID string) (sizes.Size, error) {
	if m.GetSizeByIDFunc != nil {
		return m.GetSizeByIDFunc(ctx, storeID, sizeID)
	}
	return sizes.Size{}, errMockDB
}

func (m *mockSizes) ListSizes(ctx context.Context, storeID string) ([]sizes.Size, error) {
	if m.ListSizesFunc != nil {
		return m.ListSizesFunc(ctx, storeID)
	}
	return nil, nil
}

func (m *mockSizes) UpdateSize(ctx context.Context, storeID, sizeID string, ns sizes.NewSize) (sizes.Size, error) {
	if m.UpdateSizeFunc != nil {
		return m.UpdateSizeFunc(ctx, storeID, sizeID, ns)
	}
	return sizes.Size{}, errMockDB
}

func (m *mockSizes) DeleteSize(ctx context.Context, storeID, sizeID string) (sizes.Size, error) {
	if m.DeleteSizeFunc != nil {
		return m.DeleteSizeFunc(ctx, storeID, sizeID)
	}
	return sizes.Size{}, errMockDB
}

// mockColors implements Colors for testing
type mockColors struct {
	InsertColorFunc  func(ctx context.Context, storeID string, nc colors.NewColor) (colors.Color, error)
	GetColorByIDFunc func(ctx context.Context, storeID, colorID string) (colors.Color, error)
	ListColorsFunc   func(ctx context.Context, storeID string) ([]colors.Color, error)
	UpdateColorFunc  func(ctx context.Context, storeID, colorID string, nc colors.NewColor) (colors.Color, error)
	DeleteColorFunc  func(ctx context.Context, storeID, colorID string) (colors.Color, error)
}

func (m *mockColors) InsertColor(ctx context.Context, storeID string, nc colors.NewColor) (colors.Color, error) {
	if m.InsertColorFunc != nil {
		return m.InsertColorFunc(ctx, storeID, nc)
	}
	return colors.Color{}, errMockDB
}

func (m *mockColors) GetColorByID(ctx context.Context, storeID, colorID string) (colors.Color, error) {
	if m.GetColorByIDFunc != nil {
		return m.GetColorByIDFunc(ctx, storeID, colorID)
	}
	return colors.Color{}, errMockDB
}

func (m *mockColors) ListColors(ctx context.Context, storeID string) ([]colors.Color, error) {
	if m.ListColorsFunc != nil {
		return m.ListColorsFunc(ctx, storeID)
	}
	return nil, nil
}

func (m *mockColors) UpdateColor(ctx context.Context, storeID, colorID string, nc colors.NewColor) (colors.Color, error) {
	if m.UpdateColorFunc != nil {
		return m.UpdateColorFunc(ctx, storeID, colorID, nc)
	}
	return colors.Color{}, errMockDB
}

func (m *mockColors) DeleteColor(ctx context.Context, storeID, colorID string) (colors.Color, error) {
	if m.DeleteColorFunc != nil {
		return m.DeleteColorFunc(ctx, storeID, colorID)
	}
	return colors.Color{}, errMockDB
}

// mockProducts implements Products for testing
type mockProducts struct {
	InsertProductFunc    func(ctx context.Context, storeID string, np products.NewProduct) (products.Product, error)
	GetProductByIDFunc   func(ctx context.Context, storeID, productID string) (products.Product, error)
	ListProductsFunc     func(ctx context.Context, storeID string, filter products.ListFilter) ([]products.Product, error)
	GetProductsByIDsFunc func(ctx context.Context, storeID string, ids []string) ([]products.Product, error)
	UpdateProductFunc    func(ctx context.Context, storeID, productID string, np products.NewProduct) (products.Product, error)
	DeleteProductFunc    func(ctx context.Context, storeID, productID string) (products.Product, error)
}

func (m *mockProducts) InsertProduct(ctx context.Context, storeID string, np products.NewProduct) (products.Product, error) {
	if m.InsertProductFunc != nil {
		return m.InsertProductFunc(ctx, storeID, np)
	}
	return products.Product{}, errMockDB
}

func (m *mockProducts) GetProductByID(ctx context.Context, storeID, productID string) (products.Product, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(ctx, storeID, productID)
	}
	return products.Product{}, errMockDB
}

func (m *mockProducts) ListProducts(ctx context.Context, storeID string, filter products.ListFilter) ([]products.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, storeID, filter)
	}
	return nil, nil
}

func (m *mockProducts) GetProductsByIDs(ctx context.Context, storeID string, ids []string) ([]products.Product, error) {
	if m.GetProductsByIDsFunc != nil {
		return m.GetProductsByIDsFunc(ctx, storeID, ids)
	}
	return nil, nil
}

func (m *mockProducts) UpdateProduct(ctx context.Context, storeID, productID string, np products.NewProduct) (products.Product, error) {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, storeID, productID, np)
	}
	return products.Product{}, errMockDB
}

func (m *mockProducts) DeleteProduct(ctx context.Context, storeID, productID string) (products.Product, error) {
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(ctx, storeID, productID)
	}
	return products.Product{}, errMockDB
}

// mockOrders implements Orders for testing
type mockOrders struct {
	CreateOrderFunc   func(ctx context.Context, orderID, storeID string, productIDs []string, phone string) (orders.Order, error)
	ListOrdersFunc    func(ctx context.Context, storeID string) ([]orders.Order, error)
	FinalizeOrderFunc func(ctx context.Context, eventID, eventType, orderID, address, phone string) (orders.Order, bool, error)
}

func (m *mockOrders) CreateOrder(ctx context.Context, orderID, storeID string, productIDs []string, phone string) (orders.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, orderID, storeID, productIDs, phone)
	}
	return orders.Order{}, errMockDB
}

func (m *mockOrders) ListOrders(ctx context.Context, storeID string) ([]orders.Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, storeID)
	}
	return nil, nil
}

func (m *mockOrders) FinalizeOrder(ctx context.Context, eventID, eventType, orderID, address, phone string) (orders.Order, bool, error) {
	if m.FinalizeOrderFunc != nil {
		return m.FinalizeOrderFunc(ctx, eventID, eventType, orderID, address, phone)
	}
	return orders.Order{}, false, errMockDB
}

// mockProducer implements EventProducer for testing
type mockProducer struct {
	ProduceMessageFunc func(topic string, key, value []byte) error
}

func (m *mockProducer) ProduceMessage(topic string, key, value []byte) error {
	if m.ProduceMessageFunc != nil {
		return m.ProduceMessageFunc(topic, key, value)
	}
	return nil
}

// asUser mimics the authentication middleware by dropping verified claims for
// the given user into the request context.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		}
		ctx := context.WithValue(c.Request.Context(), auth.ClaimsKey, claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// testHandler wires a Handler from mocks, defaulting any nil mock.
func testHandler(s Stores, b Billboards, cat Categories, sz Sizes, col Colors, p Products, o Orders, producer EventProducer) *Handler {
	if s == nil {
		s = &mockStores{}
	}
	if b == nil {
		b = &mockBillboards{}
	}
	if cat == nil {
		cat = &mockCategories{}
	}
	if sz == nil {
		sz = &mockSizes{}
	}
	if col == nil {
		col = &mockColors{}
	}
	if p == nil {
		p = &mockProducts{}
	}
	if o == nil {
		o = &mockOrders{}
	}
	if producer == nil {
		producer = &mockProducer{}
	}
	return NewHandler(s, b, cat, sz, col, p, o, producer)
}
