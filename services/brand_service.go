package services

import (
	"context"
	"fmt"
	"strings"

	"vehicle-catalog-api/models"

	"gorm.io/gorm"
)

// BrandService 品牌服务
type BrandService struct {
	db    *gorm.DB
	cache Invalidator
}

// NewBrandService 创建品牌服务实例
func NewBrandService(db *gorm.DB, cache Invalidator) *BrandService {
	return &BrandService{
		db:    db,
		cache: orNoop(cache),
	}
}

// GetAllBrands 获取所有品牌
func (s *BrandService) GetAllBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := s.db.WithContext(ctx).Order("id").Find(&brands).Error
	return brands, err
}

// GetBrandByID 根据ID获取品牌（含车型）
func (s *BrandService) GetBrandByID(ctx context.Context, id int) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.WithContext(ctx).Preload("Models").First(&brand, id).Error
	if err != nil {
		return nil, notFound(err, ErrBrandNotFound)
	}
	return &brand, nil
}

// CreateBrand 创建品牌
func (s *BrandService) CreateBrand(ctx context.Context, name, slug string) (*models.Brand, error) {
	name, slug = strings.TrimSpace(name), strings.TrimSpace(slug)
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)

	// 检查slug是否已存在
	var count int64
	if err := db.Model(&models.Brand{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBrandSlugExists
	}

	brand := models.Brand{Name: name, Slug: slug}
	if err := db.Create(&brand).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &brand, nil
}

// UpdateBrand 更新品牌
func (s *BrandService) UpdateBrand(ctx context.Context, id int, name, slug string) (*models.Brand, error) {
	name, slug = strings.TrimSpace(name), strings.TrimSpace(slug)
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)

	var brand models.Brand
	if err := db.First(&brand, id).Error; err != nil {
		return nil, notFound(err, ErrBrandNotFound)
	}

	// 检查新slug是否与其他品牌冲突
	var count int64
	if err := db.Model(&models.Brand{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBrandSlugExists
	}

	brand.Name = name
	brand.Slug = slug
	if err := db.Save(&brand).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &brand, nil
}

// DeleteBrand 删除品牌，存在车型或配置分配时拒绝
func (s *BrandService) DeleteBrand(ctx context.Context, id int) error {
	db := s.db.WithContext(ctx)

	var brand models.Brand
	if err := db.First(&brand, id).Error; err != nil {
		return notFound(err, ErrBrandNotFound)
	}

	var modelCount, assignmentCount int64
	if err := db.Model(&models.Model{}).Where("brand_id = ?", id).Count(&modelCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.EquipmentAssignment{}).Where("brand_id = ?", id).Count(&assignmentCount).Error; err != nil {
		return err
	}
	if modelCount+assignmentCount > 0 {
		return fmt.Errorf("%w: brand %d has %d models and %d equipment assignments", ErrHasChildren, id, modelCount, assignmentCount)
	}

	if err := db.Delete(&brand).Error; err != nil {
		return fmt.Errorf("failed to delete brand from database: %w", err)
	}

	s.cache.Invalidate()
	return nil
}
