package middleware

import (
	"vehicle-catalog-api/catalog/permission"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
)

const (
	// RolesHeader 网关注入的角色列表（逗号分隔）
	RolesHeader = "X-User-Roles"
	// PermissionsHeader 网关注入的权限列表（逗号分隔）
	PermissionsHeader = "X-User-Permissions"

	capabilitiesKey = "capabilities"
)

// Capabilities 从请求头解析调用方的角色与权限
func Capabilities() gin.HandlerFunc {
	return func(c *gin.Context) {
		caps := permission.NewCapabilitySet(
			permission.ParseList(c.GetHeader(RolesHeader)),
			permission.ParseList(c.GetHeader(PermissionsHeader)),
		)
		c.Set(capabilitiesKey, caps)
		c.Next()
	}
}

// CapabilitiesFrom 获取请求的能力集合
func CapabilitiesFrom(c *gin.Context) permission.CapabilitySet {
	if v, ok := c.Get(capabilitiesKey); ok {
		if caps, ok := v.(permission.CapabilitySet); ok {
			return caps
		}
	}
	return permission.NewCapabilitySet(nil, nil)
}

// RequireCapability 不满足访问要求时返回403
func RequireCapability(gate permission.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.Allows(CapabilitiesFrom(c)) {
			utils.Forbidden(c, "没有权限执行该操作")
			return
		}
		c.Next()
	}
}
