package selection

import (
	"vehicle-catalog-api/catalog/cascade"
)

// Validator 一对父子级的有效性检查
type Validator interface {
	Field() string
	Validate() bool
}

// Level 一对父子级选择器
//
// parent 返回父级当前选择；子级选择通过 Select 由用户修改，
// 或在 Validate 中因父级变化而被清除，两种情况都会触发 OnSelectionChange。
type Level[T Entity] struct {
	field             string
	children          []T
	parent            func() *int
	selected          *int
	OnSelectionChange func(id *int)
}

// NewLevel 创建子级选择器
func NewLevel[T Entity](field string, children []T, parent func() *int) *Level[T] {
	if parent == nil {
		parent = func() *int { return nil }
	}
	return &Level[T]{
		field:    field,
		children: children,
		parent:   parent,
	}
}

// Field 选择字段名
func (l *Level[T]) Field() string {
	return l.field
}

// SetChildren 替换子级列表（数据重新加载后调用）
func (l *Level[T]) SetChildren(children []T) {
	l.children = children
}

// Options 当前父级下可选的子级
func (l *Level[T]) Options() []T {
	return cascade.FilterChildren(l.children, l.parent())
}

// Selected 当前子级选择
func (l *Level[T]) Selected() *int {
	return l.selected
}

// Restore 恢复已保存的选择，不触发回调
func (l *Level[T]) Restore(id *int) {
	l.selected = id
}

// Select 用户修改选择
func (l *Level[T]) Select(id *int) {
	l.set(id)
}

// Validate 父级或列表变化后调用；选择失效时清除并返回 true
func (l *Level[T]) Validate() bool {
	next, cleared := Reconcile(l.parent(), l.selected, l.Options())
	if !cleared {
		return false
	}
	l.set(next)
	return true
}

func (l *Level[T]) set(id *int) {
	if cascade.SameID(l.selected, id) {
		return
	}
	l.selected = id
	if l.OnSelectionChange != nil {
		l.OnSelectionChange(id)
	}
}
