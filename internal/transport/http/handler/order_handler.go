package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurelia-api/internal/service"
	"aurelia-api/internal/transport/http/middleware"
	resp "aurelia-api/internal/transport/http/response"
)

type OrderHandler struct {
	checkout *service.CheckoutService
	orders   *service.OrderService
}

func NewOrderHandler(checkout *service.CheckoutService, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

type checkoutIn struct {
	ShippingAddress *string `json:"shipping_address"`
}

// Checkout converts the caller's cart into a pending order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var in checkoutIn
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	order, err := h.checkout.Checkout(c.Request.Context(), u.ID, in.ShippingAddress)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	orders, err := h.orders.ListForUser(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(orders))
}

func (h *OrderHandler) Get(c *gin.Context) {
	u := middleware.CurrentUser(c)
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), u.ID, orderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(order))
}

func (h *OrderHandler) AdminListAll(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(orders))
}

type statusIn struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	var in statusIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), orderID, in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(order))
}
