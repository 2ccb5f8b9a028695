package models

import (
	"time"
)

// EquipmentItem 配置项
type EquipmentItem struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// EquipmentAssignment 品牌可用的配置项（与车型/代系无层级关系）
type EquipmentAssignment struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	BrandID   int       `json:"brand_id" gorm:"column:brand_id;not null;uniqueIndex:idx_equipment_brand_item"`
	ItemID    int       `json:"item_id" gorm:"column:item_id;not null;uniqueIndex:idx_equipment_brand_item"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	// 关联关系
	Brand *Brand         `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Item  *EquipmentItem `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

// EntityID 选择的是配置项ID而不是分配记录ID
func (a EquipmentAssignment) EntityID() int {
	return a.ItemID
}

func (a EquipmentAssignment) ParentKey() int {
	return a.BrandID
}

// ItemName 配置项名称，未加载关联时为空
func (a EquipmentAssignment) ItemName() string {
	if a.Item == nil {
		return ""
	}
	return a.Item.Name
}
