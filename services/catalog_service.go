package services

import (
	"context"

	"vehicle-catalog-api/models"

	"gorm.io/gorm"
)

// CatalogService 基于数据库的目录数据源，供级联选择使用
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService 创建目录数据源
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Brands 全部品牌
func (s *CatalogService) Brands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := s.db.WithContext(ctx).Order("name, id").Find(&brands).Error
	return brands, err
}

// Models 全部车型（含品牌）
func (s *CatalogService) Models(ctx context.Context) ([]models.Model, error) {
	var list []models.Model
	err := s.db.WithContext(ctx).Preload("Brand").Order("name, id").Find(&list).Error
	return list, err
}

// Generations 全部代系（含车型和品牌）
func (s *CatalogService) Generations(ctx context.Context) ([]models.Generation, error) {
	var list []models.Generation
	err := s.db.WithContext(ctx).Preload("Model.Brand").Order("name, id").Find(&list).Error
	return list, err
}

// EquipmentAssignments 全部品牌配置分配（含品牌和配置项）
func (s *CatalogService) EquipmentAssignments(ctx context.Context) ([]models.EquipmentAssignment, error) {
	var list []models.EquipmentAssignment
	err := s.db.WithContext(ctx).Preload("Brand").Preload("Item").Order("id").Find(&list).Error
	return list, err
}
