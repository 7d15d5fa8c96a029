package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/chalher_shop/pkg/middleware/apikey"
	loggingmw "github.com/Skotchmaster/chalher_shop/pkg/middleware/logging"
)

type Deps struct {
	ProductHandler  *ProductHTTP
	CartItemHandler *CartItemHTTP
	// APIKeySecret enables the apikey check on /rest/v1 when set.
	APIKeySecret []byte
	Ready        func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	keyMW := apikey.New(d.APIKeySecret)

	v1 := e.Group("/rest/v1")
	v1.Use(keyMW.Require)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)

	cart := v1.Group("/cart_items")
	cart.GET("", d.CartItemHandler.GetCartItems)
	cart.POST("", d.CartItemHandler.CreateCartItem)
	cart.POST("/merge", d.CartItemHandler.MergeCartItem)
	cart.PATCH("/:id", d.CartItemHandler.PatchCartItem)
	cart.DELETE("/:id", d.CartItemHandler.DeleteCartItem)
}

// New builds the echo instance with the store API middleware chain.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, apikey.Header},
	}))

	Register(e, d)
	return e
}
