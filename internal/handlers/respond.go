package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"earnings-wallet/internal/services"
	"earnings-wallet/pkg/common"
)

// respondError maps a service error kind onto an HTTP status with the shared
// response envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindInvariant:
		status = http.StatusConflict
	case services.KindDependency:
		status = http.StatusBadGateway
	}
	c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
}

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data, message))
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// respondPage returns one page of an already-loaded list with navigation
// metadata.
func respondPage[T any](c *gin.Context, items []T, message string) {
	page, limit := pageParams(c)
	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	c.JSON(http.StatusOK, common.PaginateResponse(items[start:end], int64(len(items)), page, limit, message))
}
