// Package selection 维护级联选择的有效性：父级变化后清除不再匹配的子级选择
package selection

import (
	"vehicle-catalog-api/catalog/cascade"
)

// Entity 可被选择的子级实体
type Entity interface {
	cascade.Child
	EntityID() int
}

// Contains 判断列表中是否存在指定ID
func Contains[T Entity](list []T, id int) bool {
	for _, item := range list {
		if item.EntityID() == id {
			return true
		}
	}
	return false
}

// Reconcile 校验子级选择
//
// 仅当父级和当前选择都存在时才检查；当前选择不在 filtered 中则清除。
// 返回新的选择以及是否发生了清除。
func Reconcile[T Entity](parentID, current *int, filtered []T) (*int, bool) {
	if parentID == nil || current == nil {
		return current, false
	}
	if Contains(filtered, *current) {
		return current, false
	}
	return nil, true
}

// Value 根级选择（没有父级，例如品牌）
type Value struct {
	id                *int
	OnSelectionChange func(id *int)
}

// NewValue 创建根级选择
func NewValue(id *int) *Value {
	return &Value{id: id}
}

// Get 获取当前选择
func (v *Value) Get() *int {
	return v.id
}

// Select 用户修改选择
func (v *Value) Select(id *int) {
	if cascade.SameID(v.id, id) {
		return
	}
	v.id = id
	if v.OnSelectionChange != nil {
		v.OnSelectionChange(id)
	}
}
