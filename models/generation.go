package models

import (
	"time"
)

// Generation 代系模型，隶属于车型
type Generation struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_generations_model_name"`
	ModelID   int       `json:"model_id" gorm:"column:model_id;not null;uniqueIndex:idx_generations_model_name"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	// 关联关系
	Model *Model `json:"model,omitempty" gorm:"foreignKey:ModelID"`
}

func (g Generation) EntityID() int {
	return g.ID
}

func (g Generation) ParentKey() int {
	return g.ModelID
}
