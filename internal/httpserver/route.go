package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/fazrilrizki/simple-pos/internal/middleware/auth"
)

type Deps struct {
	OrderHandler   *OrderHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	adminMW := authmw.New(d.JWTSecret)

	orders := e.Group("/api/order")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:id/status", d.OrderHandler.CheckOrderStatus)

	ordersAdmin := orders.Group("", adminMW.RequireAdmin)
	ordersAdmin.GET("", d.OrderHandler.GetOrders)
	ordersAdmin.POST("/:id/simulate", d.OrderHandler.SimulatePayment)
	ordersAdmin.POST("/:id/finish", d.OrderHandler.FinishOrder)

	e.POST("/api/payment/webhook", d.OrderHandler.PaymentWebhook)

	e.GET("/api/sales/report", d.OrderHandler.SalesReport, adminMW.RequireAdmin)

	products := e.Group("/api/product")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.SearchProducts)
	}

	productsAdmin := products.Group("", adminMW.RequireAdmin)
	productsAdmin.POST("", d.CatalogHandler.CreateProduct)
	productsAdmin.PATCH("/:id", d.CatalogHandler.PatchProduct)
	productsAdmin.DELETE("/:id", d.CatalogHandler.DeleteProduct)

	categories := e.Group("/api/category")
	categories.GET("", d.CatalogHandler.GetCategories)

	categoriesAdmin := categories.Group("", adminMW.RequireAdmin)
	categoriesAdmin.POST("", d.CatalogHandler.CreateCategory)
	categoriesAdmin.DELETE("/:id", d.CatalogHandler.DeleteCategory)
}
