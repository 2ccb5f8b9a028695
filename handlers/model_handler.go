package handlers

import (
	"vehicle-catalog-api/catalog/label"
	"vehicle-catalog-api/models"
	"vehicle-catalog-api/services"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
)

// ModelHandler 车型控制器
type ModelHandler struct {
	modelService *services.ModelService
}

// NewModelHandler 创建车型控制器
func NewModelHandler(modelService *services.ModelService) *ModelHandler {
	return &ModelHandler{modelService: modelService}
}

type modelRequest struct {
	BrandID int    `json:"brand_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type labelledModel struct {
	models.Model
	Label string `json:"label"`
}

// GetModels 获取车型列表，支持 ?brand_id= 筛选
func (h *ModelHandler) GetModels(c *gin.Context) {
	brandID, ok := queryID(c, "brand_id")
	if !ok {
		return
	}

	list, err := h.modelService.ListModels(c.Request.Context(), brandID)
	if err != nil {
		respondError(c, err, "获取车型列表失败")
		return
	}

	items := make([]labelledModel, 0, len(list))
	for _, m := range list {
		items = append(items, labelledModel{Model: m, Label: label.ModelLabel(m, brandID != nil)})
	}
	utils.List(c, items, len(items), "获取车型列表成功")
}

// GetModel 获取单个车型
func (h *ModelHandler) GetModel(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的车型ID")
	if !ok {
		return
	}

	model, err := h.modelService.GetModelByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "获取车型失败")
		return
	}
	utils.Success(c, model, "获取车型成功")
}

// CreateModel 创建车型
func (h *ModelHandler) CreateModel(c *gin.Context) {
	var req modelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	model, err := h.modelService.CreateModel(c.Request.Context(), req.BrandID, req.Name)
	if err != nil {
		respondError(c, err, "创建车型失败")
		return
	}
	utils.Created(c, model, "车型创建成功")
}

// UpdateModel 更新车型
func (h *ModelHandler) UpdateModel(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的车型ID")
	if !ok {
		return
	}

	var req modelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	model, err := h.modelService.UpdateModel(c.Request.Context(), id, req.BrandID, req.Name)
	if err != nil {
		respondError(c, err, "更新车型失败")
		return
	}
	utils.Success(c, model, "车型更新成功")
}

// DeleteModel 删除车型
func (h *ModelHandler) DeleteModel(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的车型ID")
	if !ok {
		return
	}

	if err := h.modelService.DeleteModel(c.Request.Context(), id); err != nil {
		respondError(c, err, "删除车型失败")
		return
	}
	utils.Success(c, nil, "车型删除成功")
}
