package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aurelia-api/internal/service"
	resp "aurelia-api/internal/transport/http/response"
)

// fail translates the service error taxonomy into HTTP status + envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, err.Error()))
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, resp.Error(resp.CodeConflict, err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, resp.Error(resp.CodeUnprocessable, err.Error()))
	case errors.Is(err, service.ErrInactiveAccount),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
}

func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}
