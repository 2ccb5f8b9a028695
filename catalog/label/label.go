// Package label 生成下拉选项的显示文本
package label

import (
	"strings"

	"vehicle-catalog-api/models"
)

const (
	// Unknown 上级名称缺失时的占位
	Unknown = "Unknown"
	// Separator 层级名称分隔符
	Separator = " - "
)

// FormatLabel 生成显示文本
//
// parentSelected 为 true 时父级已由用户筛选，只返回自身名称；
// 否则按 祖先... - 自身 拼接，缺失的祖先名称用 Unknown 代替。
func FormatLabel(name string, parentSelected bool, ancestors ...string) string {
	if parentSelected {
		return name
	}

	parts := make([]string, 0, len(ancestors)+1)
	for _, ancestor := range ancestors {
		if strings.TrimSpace(ancestor) == "" {
			ancestor = Unknown
		}
		parts = append(parts, ancestor)
	}
	parts = append(parts, name)
	return strings.Join(parts, Separator)
}

// BrandLabel 品牌显示文本
func BrandLabel(b models.Brand) string {
	return b.Name
}

// ModelLabel 车型显示文本：品牌 - 车型
func ModelLabel(m models.Model, brandSelected bool) string {
	return FormatLabel(m.Name, brandSelected, brandName(m.Brand))
}

// GenerationLabel 代系显示文本：品牌 - 车型 - 代系
func GenerationLabel(g models.Generation, modelSelected bool) string {
	var brand, model string
	if g.Model != nil {
		model = g.Model.Name
		brand = brandName(g.Model.Brand)
	}
	return FormatLabel(g.Name, modelSelected, brand, model)
}

// EquipmentLabel 配置项显示文本：品牌 - 配置项
func EquipmentLabel(a models.EquipmentAssignment, brandSelected bool) string {
	return FormatLabel(a.ItemName(), brandSelected, brandName(a.Brand))
}

func brandName(b *models.Brand) string {
	if b == nil {
		return ""
	}
	return b.Name
}
