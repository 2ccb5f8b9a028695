package handlers

import (
	"errors"
	"strconv"

	"vehicle-catalog-api/services"
	"vehicle-catalog-api/types"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pathID 解析路径中的ID参数
func pathID(c *gin.Context, name, message string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		utils.BadRequest(c, message)
		return 0, false
	}
	return id, true
}

// queryID 解析可选的查询参数ID，缺省返回 nil
func queryID(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		utils.BadRequest(c, "无效的查询参数: "+name)
		return nil, false
	}
	return &id, true
}

// respondError 将服务层错误映射为HTTP响应
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, types.ErrUnknownField):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBrandNotFound),
		errors.Is(err, services.ErrModelNotFound),
		errors.Is(err, services.ErrGenerationNotFound),
		errors.Is(err, services.ErrEquipmentItemNotFound),
		errors.Is(err, services.ErrAssignmentNotFound),
		errors.Is(err, utils.ErrSessionNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrBrandSlugExists),
		errors.Is(err, services.ErrModelNameExists),
		errors.Is(err, services.ErrGenerationNameExists),
		errors.Is(err, services.ErrEquipmentNameExists),
		errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrHasChildren),
		errors.Is(err, services.ErrReparent):
		utils.Conflict(c, err.Error())
	case errors.Is(err, utils.ErrTooManySessions):
		utils.TooManyRequests(c, err.Error())
	default:
		utils.Logger().Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		utils.InternalServerError(c, fallback)
	}
}
