package types

import (
	"errors"
	"fmt"
)

// 选择字段名
const (
	FieldBrand      = "brand_id"
	FieldModel      = "model_id"
	FieldGeneration = "generation_id"
	FieldEquipment  = "equipment_id"
)

// SelectionState 表单当前的级联选择，nil 表示未选择
type SelectionState struct {
	BrandID      *int `json:"brand_id"`
	ModelID      *int `json:"model_id"`
	GenerationID *int `json:"generation_id"`
	EquipmentID  *int `json:"equipment_id"`
}

// Option 下拉选项
type Option struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// OptionSet 各级可选项
type OptionSet struct {
	Brands      []Option `json:"brands"`
	Models      []Option `json:"models"`
	Generations []Option `json:"generations"`
	Equipment   []Option `json:"equipment"`
}

// ReconcileResult 选择校验结果
type ReconcileResult struct {
	Selection SelectionState `json:"selection"`
	Cleared   []string       `json:"cleared"`
	Options   OptionSet      `json:"options"`
}

// ErrUnknownField 未知的选择字段
var ErrUnknownField = errors.New("unknown selection field")

// Apply 应用用户修改，patch 中的 nil 表示清空该字段
func (s SelectionState) Apply(patch map[string]*int) (SelectionState, error) {
	next := s
	for field, value := range patch {
		switch field {
		case FieldBrand:
			next.BrandID = value
		case FieldModel:
			next.ModelID = value
		case FieldGeneration:
			next.GenerationID = value
		case FieldEquipment:
			next.EquipmentID = value
		default:
			return s, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return next, nil
}
