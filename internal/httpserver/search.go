package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fazrilrizki/simple-pos/internal/search"
	"github.com/fazrilrizki/simple-pos/internal/util"
	"github.com/fazrilrizki/simple-pos/pkg/logging"
)

type SearchHTTP struct {
	Client *search.Client
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_products_error", "status", 400, "reason", "q required")
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Client.Search(ctx, q, from, limit)
	if err != nil {
		l.Error("search_products_error", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	l.Info("search_products_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": products,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}
