package models

import (
	"time"
)

// Brand 品牌模型（层级根节点，slug唯一）
type Brand struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Slug      string    `json:"slug" gorm:"column:slug;type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	// 关联关系
	Models []Model `json:"models,omitempty" gorm:"foreignKey:BrandID"`
}

// EntityID 实体ID
func (b Brand) EntityID() int {
	return b.ID
}

// ParentKey 品牌没有父级
func (b Brand) ParentKey() int {
	return 0
}
