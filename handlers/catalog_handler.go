package handlers

import (
	"vehicle-catalog-api/services"
	"vehicle-catalog-api/types"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler 级联选择控制器
type CatalogHandler struct {
	selector *services.SelectorService
}

// NewCatalogHandler 创建级联选择控制器
func NewCatalogHandler(selector *services.SelectorService) *CatalogHandler {
	return &CatalogHandler{selector: selector}
}

// GetOptions 按当前选择获取各级可选项
// GET /api/catalog/options?brand_id=&model_id=
func (h *CatalogHandler) GetOptions(c *gin.Context) {
	brandID, ok := queryID(c, "brand_id")
	if !ok {
		return
	}
	modelID, ok := queryID(c, "model_id")
	if !ok {
		return
	}

	options, err := h.selector.Options(c.Request.Context(), types.SelectionState{
		BrandID: brandID,
		ModelID: modelID,
	})
	if err != nil {
		respondError(c, err, "获取可选项失败")
		return
	}
	utils.Success(c, options, "获取可选项成功")
}

// Reconcile 校验表单选择，返回清除失效字段后的选择
// POST /api/catalog/selection
func (h *CatalogHandler) Reconcile(c *gin.Context) {
	var state types.SelectionState
	if err := c.ShouldBindJSON(&state); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	result, err := h.selector.Reconcile(c.Request.Context(), state)
	if err != nil {
		respondError(c, err, "校验选择失败")
		return
	}
	utils.Success(c, result, "校验选择成功")
}
