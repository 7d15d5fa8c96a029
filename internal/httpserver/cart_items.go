package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/service"
	"github.com/Skotchmaster/chalher_shop/internal/transport"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

type CartItemHTTP struct {
	Svc *service.CartService
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}
	return id, nil
}

// writeError maps service errors to status codes and logs them under event.
func writeError(c echo.Context, event string, err error) error {
	l := logging.FromContext(c.Request().Context())
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "cart item not found")
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (h *CartItemHTTP) GetCartItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_items.list")

	items, err := h.Svc.ListCartItems(ctx, c.QueryParam("user_session_id"))
	if err != nil {
		return writeError(c, "get_cart_items_error", err)
	}

	l.Info("get_cart_items_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *CartItemHTTP) CreateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_items.create")

	var req transport.CreateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_cart_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item := models.CartItem{
		UserSessionID: req.UserSessionID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Message:       req.Message,
	}
	if err := h.Svc.CreateCartItem(ctx, &item); err != nil {
		return writeError(c, "create_cart_item_error", err)
	}

	l.Info("create_cart_item_success", "cart_item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartItemHTTP) MergeCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_items.merge")

	var req transport.MergeCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("merge_cart_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		l.Warn("merge_cart_item_error", "status", 400, "quantity", quantity)
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be more than zero")
	}

	item := models.CartItem{
		UserSessionID: req.UserSessionID,
		ProductID:     req.ProductID,
		Quantity:      uint(quantity),
		Message:       req.Message,
	}
	if err := h.Svc.MergeCartItem(ctx, &item); err != nil {
		return writeError(c, "merge_cart_item_error", err)
	}

	l.Info("merge_cart_item_success", "cart_item_id", item.ID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartItemHTTP) PatchCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_items.patch")

	id, err := parseID(c)
	if err != nil {
		l.Warn("patch_cart_item_error", "status", 400, "error", err)
		return err
	}

	var req transport.PatchCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_cart_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == nil {
		l.Warn("patch_cart_item_error", "status", 400, "reason", "quantity missing")
		return echo.NewHTTPError(http.StatusBadRequest, "quantity required")
	}

	item, deleted, err := h.Svc.UpdateQuantity(ctx, id, *req.Quantity)
	if err != nil {
		return writeError(c, "patch_cart_item_error", err)
	}
	if deleted {
		l.Info("cart_item_deleted", "cart_item_id", id)
		return c.NoContent(http.StatusNoContent)
	}

	l.Info("patch_cart_item_success", "cart_item_id", id, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartItemHTTP) DeleteCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_items.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_cart_item_error", "status", 400, "error", err)
		return err
	}

	if err := h.Svc.DeleteCartItem(ctx, id); err != nil {
		return writeError(c, "delete_cart_item_error", err)
	}

	l.Info("delete_cart_item_success", "cart_item_id", id)
	return c.NoContent(http.StatusNoContent)
}
