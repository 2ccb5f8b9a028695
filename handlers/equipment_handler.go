package handlers

import (
	"vehicle-catalog-api/catalog/label"
	"vehicle-catalog-api/models"
	"vehicle-catalog-api/services"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
)

// EquipmentHandler 配置控制器
type EquipmentHandler struct {
	equipmentService *services.EquipmentService
}

// NewEquipmentHandler 创建配置控制器
func NewEquipmentHandler(equipmentService *services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

type labelledAssignment struct {
	models.EquipmentAssignment
	Label string `json:"label"`
}

// GetItems 获取所有配置项
func (h *EquipmentHandler) GetItems(c *gin.Context) {
	items, err := h.equipmentService.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err, "获取配置项列表失败")
		return
	}
	utils.List(c, items, len(items), "获取配置项列表成功")
}

// CreateItem 创建配置项
func (h *EquipmentHandler) CreateItem(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	item, err := h.equipmentService.CreateItem(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "创建配置项失败")
		return
	}
	utils.Created(c, item, "配置项创建成功")
}

// DeleteItem 删除配置项
func (h *EquipmentHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "id", "无效的配置项ID")
	if !ok {
		return
	}

	if err := h.equipmentService.DeleteItem(c.Request.Context(), id); err != nil {
		respondError(c, err, "删除配置项失败")
		return
	}
	utils.Success(c, nil, "配置项删除成功")
}

// GetAssignments 获取品牌配置，支持 ?brand_id= 筛选
func (h *EquipmentHandler) GetAssignments(c *gin.Context) {
	brandID, ok := queryID(c, "brand_id")
	if !ok {
		return
	}

	list, err := h.equipmentService.ListAssignments(c.Request.Context(), brandID)
	if err != nil {
		respondError(c, err, "获取品牌配置失败")
		return
	}

	items := make([]labelledAssignment, 0, len(list))
	for _, a := range list {
		items = append(items, labelledAssignment{EquipmentAssignment: a, Label: label.EquipmentLabel(a, brandID != nil)})
	}
	utils.List(c, items, len(items), "获取品牌配置成功")
}

// Assign 为品牌分配配置项
func (h *EquipmentHandler) Assign(c *gin.Context) {
	var req struct {
		BrandID int `json:"brand_id" binding:"required"`
		ItemID  int `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	assignment, err := h.equipmentService.Assign(c.Request.Context(), req.BrandID, req.ItemID)
	if err != nil {
		respondError(c, err, "分配配置项失败")
		return
	}
	utils.Created(c, assignment, "配置项分配成功")
}

// Unassign 取消品牌的配置项
func (h *EquipmentHandler) Unassign(c *gin.Context) {
	brandID, ok := pathID(c, "brandId", "无效的品牌ID")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "无效的配置项ID")
	if !ok {
		return
	}

	if err := h.equipmentService.Unassign(c.Request.Context(), brandID, itemID); err != nil {
		respondError(c, err, "取消配置项失败")
		return
	}
	utils.Success(c, nil, "配置项已取消")
}
