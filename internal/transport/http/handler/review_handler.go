package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurelia-api/internal/service"
	"aurelia-api/internal/transport/http/middleware"
	resp "aurelia-api/internal/transport/http/response"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	reviews, err := h.svc.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(reviews))
}

type reviewIn struct {
	Rating  int     `json:"rating" binding:"required,gte=1,lte=5"`
	Comment *string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	var in reviewIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	review, err := h.svc.Add(c.Request.Context(), u.ID, productID, in.Rating, in.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	reviewID, ok := paramID(c, "review_id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), u, reviewID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": reviewID}))
}
