package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sharmaketan/shopkart/internal/audit"
	"github.com/sharmaketan/shopkart/internal/logging"
	authmw "github.com/sharmaketan/shopkart/internal/middleware/auth"
	"github.com/sharmaketan/shopkart/internal/service/order"
)

type OrderHandler struct {
	Svc   *order.Service
	Audit *audit.Recorder
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")
	ident, _ := authmw.FromContext(c)

	var req order.PlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.TotalAmount == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "all fields are required")
	}

	placed, err := h.Svc.Place(ctx, ident.Actor(), req)
	if err != nil {
		h.Audit.Record(c, audit.ActionNewOrderPlacedFailed, map[string]any{"error": err.Error()})
		l.Warn("place_order_error", "error", err)
		return serviceError(err)
	}

	h.Audit.Record(c, audit.ActionNewOrderPlaced, map[string]any{
		"order_id": placed.ID, "total": placed.TotalAmount,
	})
	l.Info("place_order_success", "order_id", placed.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "order placed successfully",
		"order":   placed,
	})
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	orders, err := h.Svc.ListMine(c.Request().Context(), ident.ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	found, err := h.Svc.Get(c.Request().Context(), ident.Actor(), uint(orderID))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, found)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")
	ident, _ := authmw.FromContext(c)

	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	cancelled, err := h.Svc.Cancel(ctx, ident.Actor(), uint(orderID))
	if err != nil {
		h.Audit.Record(c, audit.ActionOrderCancelledFailed, map[string]any{
			"order_id": orderID, "error": err.Error(),
		})
		l.Warn("cancel_order_error", "order_id", orderID, "error", err)
		return serviceError(err)
	}

	h.Audit.Record(c, audit.ActionOrderCancelled, map[string]any{"order_id": cancelled.ID})
	l.Info("cancel_order_success", "order_id", cancelled.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "order cancelled successfully",
		"order":   cancelled,
	})
}

func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	orders, err := h.Svc.ListAll(c.Request().Context(), ident.Actor())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")
	ident, _ := authmw.FromContext(c)

	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.UpdateStatus(ctx, ident.Actor(), uint(orderID), req.Status)
	if err != nil {
		h.Audit.Record(c, audit.ActionOrderStatusUpdatedFailed, map[string]any{
			"order_id": orderID, "status": req.Status, "error": err.Error(),
		})
		l.Warn("update_status_error", "order_id", orderID, "error", err)
		return serviceError(err)
	}

	h.Audit.Record(c, audit.ActionOrderStatusUpdated, map[string]any{
		"order_id": updated.ID, "status": updated.Status,
	})
	l.Info("update_status_success", "order_id", updated.ID, "status", updated.Status)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "order status updated",
		"order":   updated,
	})
}
