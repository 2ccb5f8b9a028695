package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrBrandNotFound         = errors.New("brand not found")
	ErrModelNotFound         = errors.New("model not found")
	ErrGenerationNotFound    = errors.New("generation not found")
	ErrEquipmentItemNotFound = errors.New("equipment item not found")
	ErrAssignmentNotFound    = errors.New("equipment assignment not found")

	ErrBrandSlugExists      = errors.New("brand slug already exists")
	ErrModelNameExists      = errors.New("model name already exists for this brand")
	ErrGenerationNameExists = errors.New("generation name already exists for this model")
	ErrEquipmentNameExists  = errors.New("equipment item name already exists")
	ErrAlreadyAssigned      = errors.New("equipment item already assigned to brand")

	// ErrHasChildren 删除时仍有下级数据
	ErrHasChildren = errors.New("entity still has dependent records")
	// ErrReparent 不允许修改上级关联
	ErrReparent = errors.New("changing the parent of an existing entity is not allowed")
	// ErrInvalidInput 参数不合法
	ErrInvalidInput = errors.New("invalid input")
)

// Invalidator 写操作后使目录缓存失效
type Invalidator interface {
	Invalidate()
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate() {}

func orNoop(cache Invalidator) Invalidator {
	if cache == nil {
		return noopInvalidator{}
	}
	return cache
}

// notFound 把 gorm 的记录不存在转换为领域错误
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
