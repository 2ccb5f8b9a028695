package models

import (
	"time"
)

// Model 车型模型，隶属于品牌
type Model struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_models_brand_name"`
	BrandID   int       `json:"brand_id" gorm:"column:brand_id;not null;uniqueIndex:idx_models_brand_name"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	// 关联关系
	Brand       *Brand       `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Generations []Generation `json:"generations,omitempty" gorm:"foreignKey:ModelID"`
}

// TableName 指定表名
func (Model) TableName() string {
	return "vehicle_models"
}

func (m Model) EntityID() int {
	return m.ID
}

func (m Model) ParentKey() int {
	return m.BrandID
}
