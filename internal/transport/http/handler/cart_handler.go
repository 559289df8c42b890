package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurelia-api/internal/service"
	"aurelia-api/internal/transport/http/middleware"
	resp "aurelia-api/internal/transport/http/response"
)

type CartHandler struct {
	svc *service.CartService
}

func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	entries, err := h.svc.List(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(entries))
}

type cartItemIn struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gte=1"`
}

func (h *CartHandler) Add(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var in cartItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.svc.Add(c.Request.Context(), u.ID, in.ProductID, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(item))
}

type setQuantityIn struct {
	// Zero (or less) means remove; required would reject it, so no binding.
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	u := middleware.CurrentUser(c)
	itemID, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	var in setQuantityIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, removed, err := h.svc.SetQuantity(c.Request.Context(), u.ID, itemID, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	if removed {
		c.JSON(http.StatusOK, resp.OK(gin.H{"removed": true, "id": itemID}))
		return
	}
	c.JSON(http.StatusOK, resp.OK(item))
}

func (h *CartHandler) Remove(c *gin.Context) {
	u := middleware.CurrentUser(c)
	itemID, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), u.ID, itemID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": itemID}))
}

func (h *CartHandler) Clear(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.svc.Clear(c.Request.Context(), u.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"cleared": true}))
}
