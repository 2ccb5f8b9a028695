package database

import (
	"errors"
	"fmt"
	"os"

	"vehicle-catalog-api/models"
	"vehicle-catalog-api/types"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedFile 初始目录数据
//
//	brands:
//	  - name: BMW
//	    slug: bmw
//	    equipment: [Head-up display]
//	    models:
//	      - name: X5
//	        generations: [G05, F15]
type SeedFile struct {
	Brands []SeedBrand `yaml:"brands"`
}

// SeedBrand 品牌及其下属数据
type SeedBrand struct {
	Name      string      `yaml:"name"`
	Slug      string      `yaml:"slug"`
	Equipment []string    `yaml:"equipment"`
	Models    []SeedModel `yaml:"models"`
}

// SeedModel 车型及其代系
type SeedModel struct {
	Name        string   `yaml:"name"`
	Generations []string `yaml:"generations"`
}

// SeedStats 导入统计
type SeedStats struct {
	Brands      int `json:"brands"`
	Models      int `json:"models"`
	Generations int `json:"generations"`
	Equipment   int `json:"equipment"`
}

// LoadSeedFile 读取YAML种子文件
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed 解析并校验种子数据
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	slugs := make(map[string]bool)
	for i, brand := range seed.Brands {
		if brand.Name == "" || brand.Slug == "" {
			return nil, fmt.Errorf("brand #%d: name and slug are required", i+1)
		}
		if slugs[brand.Slug] {
			return nil, fmt.Errorf("brand #%d: duplicate slug %q", i+1, brand.Slug)
		}
		slugs[brand.Slug] = true
		for j, model := range brand.Models {
			if model.Name == "" {
				return nil, fmt.Errorf("brand %q model #%d: name is required", brand.Slug, j+1)
			}
		}
	}
	return &seed, nil
}

// Seed 在一个事务中导入种子数据，已存在的记录保持不变
func Seed(db *gorm.DB, seed *SeedFile, progress types.ProgressCallback) (*SeedStats, error) {
	if seed == nil {
		return nil, errors.New("seed is nil")
	}

	stats := &SeedStats{}
	total := len(seed.Brands)
	pc := types.NewProgressContext(progress, 0, 100)

	err := db.Transaction(func(tx *gorm.DB) error {
		for i, sb := range seed.Brands {
			brand := models.Brand{Name: sb.Name, Slug: sb.Slug}
			created, err := findOrCreate(tx, &brand, "slug = ?", sb.Slug)
			if err != nil {
				return fmt.Errorf("brand %q: %w", sb.Slug, err)
			}
			stats.Brands += created

			for _, sm := range sb.Models {
				model := models.Model{Name: sm.Name, BrandID: brand.ID}
				created, err := findOrCreate(tx, &model, "brand_id = ? AND name = ?", brand.ID, sm.Name)
				if err != nil {
					return fmt.Errorf("model %q/%q: %w", sb.Slug, sm.Name, err)
				}
				stats.Models += created

				for _, name := range sm.Generations {
					generation := models.Generation{Name: name, ModelID: model.ID}
					created, err := findOrCreate(tx, &generation, "model_id = ? AND name = ?", model.ID, name)
					if err != nil {
						return fmt.Errorf("generation %q/%q/%q: %w", sb.Slug, sm.Name, name, err)
					}
					stats.Generations += created
				}
			}

			for _, name := range sb.Equipment {
				item := models.EquipmentItem{Name: name}
				if _, err := findOrCreate(tx, &item, "name = ?", name); err != nil {
					return fmt.Errorf("equipment %q: %w", name, err)
				}
				assignment := models.EquipmentAssignment{BrandID: brand.ID, ItemID: item.ID}
				created, err := findOrCreate(tx, &assignment, "brand_id = ? AND item_id = ?", brand.ID, item.ID)
				if err != nil {
					return fmt.Errorf("equipment %q/%q: %w", sb.Slug, name, err)
				}
				stats.Equipment += created
			}

			pc.UpdateStepProgress((i+1)*100/total, "导入品牌", sb.Slug)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed rolled back: %w", err)
	}
	return stats, nil
}

// findOrCreate 查找满足条件的记录，不存在则以 dest 当前值创建；返回新建数量
func findOrCreate(tx *gorm.DB, dest interface{}, query string, args ...interface{}) (int, error) {
	res := tx.Where(query, args...).Limit(1).Find(dest)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		return 0, nil
	}
	if err := tx.Create(dest).Error; err != nil {
		return 0, err
	}
	return 1, nil
}
