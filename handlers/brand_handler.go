package handlers

import (
	"vehicle-catalog-api/services"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
)

// BrandHandler 品牌控制器
type BrandHandler struct {
	brandService *services.BrandService
}

// NewBrandHandler 创建品牌控制器
func NewBrandHandler(brandService *services.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

type brandRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// GetBrands 获取所有品牌
func (h *BrandHandler) GetBrands(c *gin.Context) {
	brands, err := h.brandService.GetAllBrands(c.Request.Context())
	if err != nil {
		respondError(c, err, "获取品牌列表失败")
		return
	}
	utils.List(c, brands, len(brands), "获取品牌列表成功")
}

// GetBrand 获取单个品牌
func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的品牌ID")
	if !ok {
		return
	}

	brand, err := h.brandService.GetBrandByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "获取品牌失败")
		return
	}
	utils.Success(c, brand, "获取品牌成功")
}

// CreateBrand 创建品牌
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	brand, err := h.brandService.CreateBrand(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondError(c, err, "创建品牌失败")
		return
	}
	utils.Created(c, brand, "品牌创建成功")
}

// UpdateBrand 更新品牌
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的品牌ID")
	if !ok {
		return
	}

	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	brand, err := h.brandService.UpdateBrand(c.Request.Context(), id, req.Name, req.Slug)
	if err != nil {
		respondError(c, err, "更新品牌失败")
		return
	}
	utils.Success(c, brand, "品牌更新成功")
}

// DeleteBrand 删除品牌
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的品牌ID")
	if !ok {
		return
	}

	if err := h.brandService.DeleteBrand(c.Request.Context(), id); err != nil {
		respondError(c, err, "删除品牌失败")
		return
	}
	utils.Success(c, nil, "品牌删除成功")
}
