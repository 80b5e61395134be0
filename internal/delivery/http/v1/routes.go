package v1

import (
	"net/http"
	"strings"

	"zeecrown-admin/internal/delivery/http/middleware"
	"zeecrown-admin/pkg/utils"
)

type Handlers struct {
	Catalog   *AdminCatalogHandler
	Content   *ContentHandler
	Orders    *AdminOrderHandler
	Customers *CustomerHandler
	Config    *AdminConfigHandler
	Stats     *AdminStatsHandler
	Upload    *UploadHandler
}

const adminPrefix = "/api/v1/admin"

// RegisterRoutes mounts the admin API. Every admin route goes through the same
// Auth -> Admin chain.
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	admin := func(pattern string, fn http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+adminPrefix+path, middleware.RequireAdmin(fn))
	}

	// Dashboard
	admin("GET /dashboard", h.Stats.GetDashboard)

	// Products
	admin("GET /products", h.Catalog.ListProducts)
	admin("GET /products/{id}", h.Catalog.GetProduct)
	admin("POST /products", h.Catalog.CreateProduct)
	admin("PUT /products/{id}", h.Catalog.UpdateProduct)
	admin("DELETE /products/{id}", h.Catalog.DeleteProduct)

	// Banners
	admin("GET /banners", h.Content.ListBanners)
	admin("POST /banners", h.Content.CreateBanner)
	admin("PATCH /banners/{id}", h.Content.UpdateBanner)
	admin("DELETE /banners/{id}", h.Content.DeleteBanner)

	// Orders
	admin("GET /orders", h.Orders.ListOrders)
	admin("POST /orders/quote", h.Orders.Quote)
	admin("GET /orders/{id}", h.Orders.GetOrder)
	admin("GET /orders/{id}/totals", h.Orders.GetTotals)
	admin("PATCH /orders/{id}/status", h.Orders.UpdateStatus)
	admin("DELETE /orders/{id}", h.Orders.DeleteOrder)

	// Customers
	admin("GET /customers", h.Customers.ListCustomers)
	admin("GET /customers/{id}", h.Customers.GetCustomer)
	admin("PATCH /customers/{id}", h.Customers.UpdateCustomer)
	admin("DELETE /customers/{id}", h.Customers.DeleteCustomer)

	// Shipping rules
	admin("GET /shipping-rules", h.Config.GetShippingRules)
	admin("PUT /shipping-rules", h.Config.UpdateShippingRules)
	admin("POST /shipping-rules/quote", h.Config.QuoteShipping)

	admin("GET /config/enums", GetEnums)

	// Uploads
	admin("POST /uploads", h.Upload.UploadFile)

	mux.HandleFunc("GET /api/v1/health", Health)
	mux.HandleFunc("GET /health", Health) // load balancer probe
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
