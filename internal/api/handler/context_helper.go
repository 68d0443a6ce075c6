package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/api/middleware"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/jwt"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// MustGetClaims 从 Gin 上下文中安全提取认证声明。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims.PersonID == "" {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// MustGetActor 把认证声明转换为业务层的操作者身份
func MustGetActor(c *gin.Context) (service.Actor, bool) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		PersonID:   claims.PersonID,
		Roles:      claims.Roles,
		Global:     claims.Global,
		FacultyIDs: claims.FacultyIDs,
	}, true
}

// paramInt 解析路径参数为正整数，失败时写入 400 响应
func paramInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		response.BadRequest(c, 10001, "路径参数无效: "+name)
		return 0, false
	}
	return value, true
}
