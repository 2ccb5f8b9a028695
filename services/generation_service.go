package services

import (
	"context"
	"fmt"
	"strings"

	"vehicle-catalog-api/catalog/cascade"
	"vehicle-catalog-api/models"

	"gorm.io/gorm"
)

// GenerationService 代系服务
type GenerationService struct {
	db    *gorm.DB
	cache Invalidator
}

// NewGenerationService 创建代系服务实例
func NewGenerationService(db *gorm.DB, cache Invalidator) *GenerationService {
	return &GenerationService{
		db:    db,
		cache: orNoop(cache),
	}
}

// ListGenerations 获取代系，modelID 非空时只返回该车型下的代系
func (s *GenerationService) ListGenerations(ctx context.Context, modelID *int) ([]models.Generation, error) {
	var list []models.Generation
	if err := s.db.WithContext(ctx).Preload("Model.Brand").Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return cascade.FilterChildren(list, modelID), nil
}

// GetGenerationByID 根据ID获取代系
func (s *GenerationService) GetGenerationByID(ctx context.Context, id int) (*models.Generation, error) {
	var generation models.Generation
	err := s.db.WithContext(ctx).Preload("Model.Brand").First(&generation, id).Error
	if err != nil {
		return nil, notFound(err, ErrGenerationNotFound)
	}
	return &generation, nil
}

// CreateGeneration 创建代系
func (s *GenerationService) CreateGeneration(ctx context.Context, modelID int, name string) (*models.Generation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)

	// 验证车型是否存在
	var model models.Model
	if err := db.Preload("Brand").First(&model, modelID).Error; err != nil {
		return nil, notFound(err, ErrModelNotFound)
	}

	if err := s.checkNameFree(db, modelID, name, 0); err != nil {
		return nil, err
	}

	generation := models.Generation{Name: name, ModelID: modelID}
	if err := db.Create(&generation).Error; err != nil {
		return nil, err
	}
	generation.Model = &model

	s.cache.Invalidate()
	return &generation, nil
}

// UpdateGeneration 更新代系名称；modelID 必须与原值一致
func (s *GenerationService) UpdateGeneration(ctx context.Context, id, modelID int, name string) (*models.Generation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)

	var generation models.Generation
	if err := db.Preload("Model.Brand").First(&generation, id).Error; err != nil {
		return nil, notFound(err, ErrGenerationNotFound)
	}
	if generation.ModelID != modelID {
		return nil, ErrReparent
	}

	if err := s.checkNameFree(db, modelID, name, id); err != nil {
		return nil, err
	}

	generation.Name = name
	if err := db.Model(&models.Generation{ID: id}).Update("name", name).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &generation, nil
}

// DeleteGeneration 删除代系
func (s *GenerationService) DeleteGeneration(ctx context.Context, id int) error {
	db := s.db.WithContext(ctx)

	var generation models.Generation
	if err := db.First(&generation, id).Error; err != nil {
		return notFound(err, ErrGenerationNotFound)
	}

	if err := db.Delete(&generation).Error; err != nil {
		return fmt.Errorf("failed to delete generation from database: %w", err)
	}

	s.cache.Invalidate()
	return nil
}

func (s *GenerationService) checkNameFree(db *gorm.DB, modelID int, name string, exceptID int) error {
	var count int64
	err := db.Model(&models.Generation{}).
		Where("model_id = ? AND name = ? AND id != ?", modelID, name, exceptID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGenerationNameExists
	}
	return nil
}
