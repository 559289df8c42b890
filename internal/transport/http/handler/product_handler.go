package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aurelia-api/internal/service"
	resp "aurelia-api/internal/transport/http/response"
)

type ProductHandler struct {
	svc *service.CatalogService
}

func NewProductHandler(svc *service.CatalogService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productListQ struct {
	Category *string `form:"category"`
	Sub      *string `form:"sub"`
	InStock  *bool   `form:"in_stock"`
	Featured *bool   `form:"featured"`
	Skip     int     `form:"skip,default=0" binding:"gte=0"`
	Limit    int     `form:"limit,default=50" binding:"gte=1,lte=200"`
}

func (q *productListQ) filter() service.ProductFilter {
	return service.ProductFilter{
		Category: q.Category,
		Sub:      q.Sub,
		InStock:  q.InStock,
		Featured: q.Featured,
		Skip:     q.Skip,
		Limit:    q.Limit,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	var q productListQ
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	products, err := h.svc.List(c.Request.Context(), q.filter())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(products))
}

func (h *ProductHandler) ByCategory(c *gin.Context) {
	var q productListQ
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	category := c.Param("category")
	f := q.filter()
	f.Category = &category
	products, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(products))
}

func (h *ProductHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		badRequest(c, "missing search term")
		return
	}
	products, err := h.svc.Search(c.Request.Context(), term)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(products))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(p))
}

func (h *ProductHandler) Replace(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.Replace(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}

func (h *ProductHandler) Patch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var patch service.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.Patch(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
}
