package services

import (
	"context"
	"fmt"
	"strings"

	"vehicle-catalog-api/catalog/cascade"
	"vehicle-catalog-api/models"

	"gorm.io/gorm"
)

// EquipmentService 配置项及品牌配置分配服务
type EquipmentService struct {
	db    *gorm.DB
	cache Invalidator
}

// NewEquipmentService 创建配置服务实例
func NewEquipmentService(db *gorm.DB, cache Invalidator) *EquipmentService {
	return &EquipmentService{
		db:    db,
		cache: orNoop(cache),
	}
}

// ListItems 获取所有配置项
func (s *EquipmentService) ListItems(ctx context.Context) ([]models.EquipmentItem, error) {
	var items []models.EquipmentItem
	err := s.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

// CreateItem 创建配置项
func (s *EquipmentService) CreateItem(ctx context.Context, name string) (*models.EquipmentItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.EquipmentItem{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEquipmentNameExists
	}

	item := models.EquipmentItem{Name: name}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &item, nil
}

// DeleteItem 删除配置项，仍被品牌使用时拒绝
func (s *EquipmentService) DeleteItem(ctx context.Context, id int) error {
	db := s.db.WithContext(ctx)

	var item models.EquipmentItem
	if err := db.First(&item, id).Error; err != nil {
		return notFound(err, ErrEquipmentItemNotFound)
	}

	var count int64
	if err := db.Model(&models.EquipmentAssignment{}).Where("item_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: equipment item %d is assigned to %d brands", ErrHasChildren, id, count)
	}

	if err := db.Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to delete equipment item from database: %w", err)
	}

	s.cache.Invalidate()
	return nil
}

// ListAssignments 获取配置分配，brandID 非空时只返回该品牌的配置
func (s *EquipmentService) ListAssignments(ctx context.Context, brandID *int) ([]models.EquipmentAssignment, error) {
	var list []models.EquipmentAssignment
	err := s.db.WithContext(ctx).Preload("Brand").Preload("Item").Order("id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return cascade.FilterChildren(list, brandID), nil
}

// Assign 为品牌分配配置项
func (s *EquipmentService) Assign(ctx context.Context, brandID, itemID int) (*models.EquipmentAssignment, error) {
	db := s.db.WithContext(ctx)

	var brand models.Brand
	if err := db.First(&brand, brandID).Error; err != nil {
		return nil, notFound(err, ErrBrandNotFound)
	}
	var item models.EquipmentItem
	if err := db.First(&item, itemID).Error; err != nil {
		return nil, notFound(err, ErrEquipmentItemNotFound)
	}

	var count int64
	err := db.Model(&models.EquipmentAssignment{}).
		Where("brand_id = ? AND item_id = ?", brandID, itemID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyAssigned
	}

	assignment := models.EquipmentAssignment{BrandID: brandID, ItemID: itemID}
	if err := db.Create(&assignment).Error; err != nil {
		return nil, err
	}
	assignment.Brand = &brand
	assignment.Item = &item

	s.cache.Invalidate()
	return &assignment, nil
}

// Unassign 取消品牌的配置项
func (s *EquipmentService) Unassign(ctx context.Context, brandID, itemID int) error {
	res := s.db.WithContext(ctx).
		Where("brand_id = ? AND item_id = ?", brandID, itemID).
		Delete(&models.EquipmentAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	s.cache.Invalidate()
	return nil
}
