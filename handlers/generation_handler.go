package handlers

import (
	"vehicle-catalog-api/catalog/label"
	"vehicle-catalog-api/models"
	"vehicle-catalog-api/services"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
)

// GenerationHandler 代系控制器
type GenerationHandler struct {
	generationService *services.GenerationService
}

// NewGenerationHandler 创建代系控制器
func NewGenerationHandler(generationService *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

type generationRequest struct {
	ModelID int    `json:"model_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type labelledGeneration struct {
	models.Generation
	Label string `json:"label"`
}

// GetGenerations 获取代系列表，支持 ?model_id= 筛选
func (h *GenerationHandler) GetGenerations(c *gin.Context) {
	modelID, ok := queryID(c, "model_id")
	if !ok {
		return
	}

	list, err := h.generationService.ListGenerations(c.Request.Context(), modelID)
	if err != nil {
		respondError(c, err, "获取代系列表失败")
		return
	}

	items := make([]labelledGeneration, 0, len(list))
	for _, g := range list {
		items = append(items, labelledGeneration{Generation: g, Label: label.GenerationLabel(g, modelID != nil)})
	}
	utils.List(c, items, len(items), "获取代系列表成功")
}

// GetGeneration 获取单个代系
func (h *GenerationHandler) GetGeneration(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的代系ID")
	if !ok {
		return
	}

	generation, err := h.generationService.GetGenerationByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "获取代系失败")
		return
	}
	utils.Success(c, generation, "获取代系成功")
}

// CreateGeneration 创建代系
func (h *GenerationHandler) CreateGeneration(c *gin.Context) {
	var req generationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	generation, err := h.generationService.CreateGeneration(c.Request.Context(), req.ModelID, req.Name)
	if err != nil {
		respondError(c, err, "创建代系失败")
		return
	}
	utils.Created(c, generation, "代系创建成功")
}

// UpdateGeneration 更新代系
func (h *GenerationHandler) UpdateGeneration(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的代系ID")
	if !ok {
		return
	}

	var req generationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	generation, err := h.generationService.UpdateGeneration(c.Request.Context(), id, req.ModelID, req.Name)
	if err != nil {
		respondError(c, err, "更新代系失败")
		return
	}
	utils.Success(c, generation, "代系更新成功")
}

// DeleteGeneration 删除代系
func (h *GenerationHandler) DeleteGeneration(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的代系ID")
	if !ok {
		return
	}

	if err := h.generationService.DeleteGeneration(c.Request.Context(), id); err != nil {
		respondError(c, err, "删除代系失败")
		return
	}
	utils.Success(c, nil, "代系删除成功")
}
