package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

var flatShipping = decimal.RequireFromString("5.99")

// setupApp wires the full application against an in-memory SQLite database.
// Each test gets its own database so tests cannot see each other's rows.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.Profile{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLineItem{},
	)
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMProfileRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	productService := services.NewProductService(productRepo)
	profileService := services.NewProfileService(profileRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo)
	checkoutService := services.NewCheckoutService(db, cartService, cartRepo, orderRepo, nil, flatShipping)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	profileHandler := handlers.NewProfileHandler(profileService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService, profileService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	categoryHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)

	// Protected routes
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	profileHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	return app
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a user and returns a valid bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

// createProduct seeds a catalog product through the public API.
func createProduct(t *testing.T, app *fiber.App, name, price string) models.Product {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", "", map[string]interface{}{
		"name":        name,
		"description": "integration test product",
		"price":       price,
		"stock":       10,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	assert.NotEmpty(t, product.ID)
	return product
}

// saveProfile stores a shipping profile for the authenticated user.
func saveProfile(t *testing.T, app *fiber.App, token string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPut, "/api/v1/profile", token, map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"address":    "1 Main St",
		"city":       "Springfield",
		"state":      "IL",
		"zip":        "62701",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	userToRegister := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", userToRegister)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var registerResp map[string]interface{}
	decodeBody(t, resp, &registerResp)
	assert.Equal(t, "User registered successfully", registerResp["message"])

	// Duplicate registration
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", userToRegister)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])

	// Wrong password
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCartEndpointsRequireAuth(t *testing.T) {
	app := setupApp(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/cart/products/p1"},
		{http.MethodPut, "/api/v1/cart/products/p1"},
		{http.MethodDelete, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/cart/checkout"},
		{http.MethodGet, "/api/v1/orders"},
	} {
		resp := doJSON(t, app, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s must require a token", route.method, route.path)
		resp.Body.Close()
	}
}

func TestCartAddAndMerge(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "cartuser")
	laptop := createProduct(t, app, "Laptop Stand", "10.00")

	// First add creates the line.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+laptop.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart models.ShoppingCart
	decodeBody(t, resp, &cart)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Second add merges instead of duplicating.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+laptop.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("20.00")), "expected total 20.00, got %s", cart.Total)

	// Adding an unknown product fails without touching the cart.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/products/no-such-product", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Len(t, cart.Items, 1)
}

func TestCartUpdateQuantity(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "quantityuser")
	laptop := createProduct(t, app, "Laptop Stand", "10.00")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+laptop.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPut, "/api/v1/cart/products/"+laptop.ID, token, map[string]int{"quantity": 5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var cart models.ShoppingCart
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", token, nil)
	decodeBody(t, resp, &cart)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("50.00")))

	// Zero or negative quantities are rejected; the line keeps its quantity.
	resp = doJSON(t, app, http.MethodPut, "/api/v1/cart/products/"+laptop.ID, token, map[string]int{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", token, nil)
	decodeBody(t, resp, &cart)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Updating a product not in the cart is a 404.
	other := createProduct(t, app, "USB Cable", "5.00")
	resp = doJSON(t, app, http.MethodPut, "/api/v1/cart/products/"+other.ID, token, map[string]int{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutFlow(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "checkoutuser")
	laptop := createProduct(t, app, "Laptop Stand", "10.00")
	cable := createProduct(t, app, "USB Cable", "5.00")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+laptop.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+cable.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+cable.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Checkout needs a shipping profile first.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp map[string]string
	decodeBody(t, resp, &errResp)
	assert.Contains(t, errResp["message"], "shipping profile")

	saveProfile(t, app, token)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "1 Main St", order.Address)
	// 10.00 + 2 x 5.00 + 5.99 shipping = 25.99
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.99")), "expected total 25.99, got %s", order.TotalAmount)
	assert.Len(t, order.LineItems, 2)

	// The cart is empty after checkout.
	var cart models.ShoppingCart
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", token, nil)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)

	// A second checkout with nothing in the cart is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "Shopping cart is empty", errResp["message"])

	// The order is visible in the user's history.
	var orders []models.Order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	var fetched models.Order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &fetched)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Len(t, fetched.LineItems, 2)

	// The snapshot survives a catalog price change.
	resp = doJSON(t, app, http.MethodPut, "/api/v1/products/"+laptop.ID, "", map[string]interface{}{
		"name":  "Laptop Stand",
		"price": "99.99",
		"stock": 10,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, token, nil)
	decodeBody(t, resp, &fetched)
	for _, item := range fetched.LineItems {
		if item.ProductID == laptop.ID {
			assert.True(t, item.Price.Equal(decimal.RequireFromString("10.00")), "snapshot price changed to %s", item.Price)
		}
	}
}

func TestOrdersAreScopedToOwner(t *testing.T) {
	app := setupApp(t)
	ownerToken := registerAndLogin(t, app, "owner")
	otherToken := registerAndLogin(t, app, "intruder")
	laptop := createProduct(t, app, "Laptop Stand", "10.00")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+laptop.ID, ownerToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	saveProfile(t, app, ownerToken)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", ownerToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	// Another user cannot read the order, and cannot tell it exists.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	var orders []models.Order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders", otherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &orders)
	assert.Empty(t, orders)
}

func TestStaleCartLineIsOmittedFromPricedCart(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "staleuser")
	laptop := createProduct(t, app, "Laptop Stand", "10.00")
	cable := createProduct(t, app, "USB Cable", "5.00")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+laptop.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/products/"+cable.ID, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Remove the cable from the catalog while it sits in the cart.
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+cable.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The priced cart shows only the resolvable line.
	var cart models.ShoppingCart
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, laptop.ID, cart.Items[0].Product.ID)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("10.00")))

	// Checkout only charges for the resolvable line too.
	saveProfile(t, app, token)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Len(t, order.LineItems, 1)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("15.99")))
}

func TestProductCatalogCRUD(t *testing.T) {
	app := setupApp(t)
	laptop := createProduct(t, app, "Laptop Stand", "10.00")

	var fetched models.Product
	resp := doJSON(t, app, http.MethodGet, "/api/v1/products/"+laptop.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &fetched)
	assert.Equal(t, laptop.ID, fetched.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Price filters narrow the listing.
	createProduct(t, app, "USB Cable", "5.00")
	var products []models.Product
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?minPrice=8", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)
	assert.Equal(t, laptop.ID, products[0].ID)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?minPrice=not-a-number", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Negative prices never enter the catalog.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", "", map[string]interface{}{
		"name":  "Bad Product",
		"price": "-1.00",
		"stock": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
