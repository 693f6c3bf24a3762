package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kmorozova/inventory-api/internal/handlers"
	"github.com/kmorozova/inventory-api/internal/middleware/auth"
	"github.com/kmorozova/inventory-api/internal/token"
)

type Deps struct {
	DB             *gorm.DB
	Tokens         *token.Service
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to the Product API!")
	})

	authed := auth.RequireAuth(d.Tokens)
	adminOnly := auth.RequireAdmin(d.Tokens)

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/profile", d.AuthHandler.Profile, authed)
	e.POST("/logout", d.AuthHandler.Logout, authed)

	e.GET("/users", d.AuthHandler.ListUsers, adminOnly)
	e.PUT("/users/:id/role", d.AuthHandler.UpdateRole, adminOnly)

	e.GET("/products", d.ProductHandler.GetProducts, authed)
	e.GET("/products/:id", d.ProductHandler.GetProduct)
	e.POST("/add-product", d.ProductHandler.CreateProduct)
	e.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	e.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	e.GET("/search", d.SearchHandler.Search)
}
