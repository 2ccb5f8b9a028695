// Package permission 基于角色/权限集合的访问判断
package permission

import "strings"

const (
	// RoleAdmin 管理员角色
	RoleAdmin = "admin"
	// CatalogWrite 目录写权限
	CatalogWrite = "catalog:write"
)

// CapabilitySet 调用方拥有的角色与权限
type CapabilitySet struct {
	roles       map[string]struct{}
	permissions map[string]struct{}
}

// NewCapabilitySet 创建能力集合，忽略空白项
func NewCapabilitySet(roles, permissions []string) CapabilitySet {
	return CapabilitySet{
		roles:       toSet(roles),
		permissions: toSet(permissions),
	}
}

// HasRole 是否拥有角色
func (c CapabilitySet) HasRole(role string) bool {
	_, ok := c.roles[role]
	return ok
}

// HasPermission 是否拥有权限
func (c CapabilitySet) HasPermission(permission string) bool {
	_, ok := c.permissions[permission]
	return ok
}

// Requirement 访问要求：AnyRole 中任一角色，且拥有 AllPermissions 中全部权限；空字段不做限制
type Requirement struct {
	AnyRole        []string
	AllPermissions []string
}

// SatisfiedBy 判断能力集合是否满足要求
func (r Requirement) SatisfiedBy(c CapabilitySet) bool {
	if len(r.AnyRole) > 0 {
		matched := false
		for _, role := range r.AnyRole {
			if c.HasRole(role) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, permission := range r.AllPermissions {
		if !c.HasPermission(permission) {
			return false
		}
	}
	return true
}

// Gate 多个要求满足其一即可；空 Gate 放行
type Gate []Requirement

// Allows 判断是否放行
func (g Gate) Allows(c CapabilitySet) bool {
	if len(g) == 0 {
		return true
	}
	for _, requirement := range g {
		if requirement.SatisfiedBy(c) {
			return true
		}
	}
	return false
}

// CatalogWriter 目录写操作的访问控制
func CatalogWriter() Gate {
	return Gate{
		{AnyRole: []string{RoleAdmin}},
		{AllPermissions: []string{CatalogWrite}},
	}
}

// ParseList 解析逗号分隔的列表
func ParseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
