// Package cascade 级联筛选：按父级外键过滤子级列表
package cascade

// Child 带父级外键的子级实体
type Child interface {
	ParentKey() int
}

// FilterChildren 按父级ID过滤子级列表
//
// parentID 为 nil 时返回完整列表（顺序不变）；否则只保留外键等于 parentID 的元素，
// 保持原有相对顺序。总是返回新切片，不修改入参。
func FilterChildren[T Child](children []T, parentID *int) []T {
	if parentID == nil {
		out := make([]T, len(children))
		copy(out, children)
		return out
	}

	out := make([]T, 0, len(children))
	for _, child := range children {
		if child.ParentKey() == *parentID {
			out = append(out, child)
		}
	}
	return out
}

// IDRef 返回ID的指针，便于构造可选ID
func IDRef(id int) *int {
	return &id
}

// SameID 比较两个可选ID
func SameID(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
