package services

import (
	"context"
	"fmt"
	"strings"

	"vehicle-catalog-api/catalog/cascade"
	"vehicle-catalog-api/models"

	"gorm.io/gorm"
)

// ModelService 车型服务
type ModelService struct {
	db    *gorm.DB
	cache Invalidator
}

// NewModelService 创建车型服务实例
func NewModelService(db *gorm.DB, cache Invalidator) *ModelService {
	return &ModelService{
		db:    db,
		cache: orNoop(cache),
	}
}

// ListModels 获取车型，brandID 非空时只返回该品牌下的车型
func (s *ModelService) ListModels(ctx context.Context, brandID *int) ([]models.Model, error) {
	var list []models.Model
	if err := s.db.WithContext(ctx).Preload("Brand").Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return cascade.FilterChildren(list, brandID), nil
}

// GetModelByID 根据ID获取车型（含品牌和代系）
func (s *ModelService) GetModelByID(ctx context.Context, id int) (*models.Model, error) {
	var model models.Model
	err := s.db.WithContext(ctx).Preload("Brand").Preload("Generations").First(&model, id).Error
	if err != nil {
		return nil, notFound(err, ErrModelNotFound)
	}
	return &model, nil
}

// CreateModel 创建车型
func (s *ModelService) CreateModel(ctx context.Context, brandID int, name string) (*models.Model, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)

	// 验证品牌是否存在
	var brand models.Brand
	if err := db.First(&brand, brandID).Error; err != nil {
		return nil, notFound(err, ErrBrandNotFound)
	}

	if err := s.checkNameFree(db, brandID, name, 0); err != nil {
		return nil, err
	}

	model := models.Model{Name: name, BrandID: brandID}
	if err := db.Create(&model).Error; err != nil {
		return nil, err
	}
	model.Brand = &brand

	s.cache.Invalidate()
	return &model, nil
}

// UpdateModel 更新车型名称；brandID 必须与原值一致
func (s *ModelService) UpdateModel(ctx context.Context, id, brandID int, name string) (*models.Model, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)

	var model models.Model
	if err := db.Preload("Brand").First(&model, id).Error; err != nil {
		return nil, notFound(err, ErrModelNotFound)
	}
	if model.BrandID != brandID {
		return nil, ErrReparent
	}

	if err := s.checkNameFree(db, brandID, name, id); err != nil {
		return nil, err
	}

	model.Name = name
	if err := db.Model(&models.Model{ID: id}).Update("name", name).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &model, nil
}

// DeleteModel 删除车型，存在代系时拒绝
func (s *ModelService) DeleteModel(ctx context.Context, id int) error {
	db := s.db.WithContext(ctx)

	var model models.Model
	if err := db.First(&model, id).Error; err != nil {
		return notFound(err, ErrModelNotFound)
	}

	var count int64
	if err := db.Model(&models.Generation{}).Where("model_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: model %d has %d generations", ErrHasChildren, id, count)
	}

	if err := db.Delete(&model).Error; err != nil {
		return fmt.Errorf("failed to delete model from database: %w", err)
	}

	s.cache.Invalidate()
	return nil
}

func (s *ModelService) checkNameFree(db *gorm.DB, brandID int, name string, exceptID int) error {
	var count int64
	err := db.Model(&models.Model{}).
		Where("brand_id = ? AND name = ? AND id != ?", brandID, name, exceptID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrModelNameExists
	}
	return nil
}
