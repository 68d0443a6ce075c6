package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JosuePerezValenzuela/Api-Reservas/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

// Claims 自定义 JWT 声明
// 除身份外还携带角色与院系授权范围，供预约模块做范围校验
type Claims struct {
	PersonID   string   `json:"person_id"`
	Roles      []string `json:"roles"`
	Global     bool     `json:"global"`                // 是否具有全局（跨院系）权限
	FacultyIDs []int    `json:"faculty_ids,omitempty"` // 授权院系范围（Global=false 时生效）
	TokenType  string   `json:"token_type"`            // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager JWT 管理器
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken 生成 Access Token
func (m *Manager) GenerateAccessToken(personID string, roles []string, global bool, facultyIDs []int) (string, error) {
	return m.generate(personID, roles, global, facultyIDs, "access", m.accessTokenTTL)
}

// GenerateRefreshToken 生成 Refresh Token
func (m *Manager) GenerateRefreshToken(personID string, roles []string, global bool, facultyIDs []int) (string, error) {
	return m.generate(personID, roles, global, facultyIDs, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(personID string, roles []string, global bool, facultyIDs []int, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		PersonID:   personID,
		Roles:      roles,
		Global:     global,
		FacultyIDs: facultyIDs,
		TokenType:  tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "api-reservas",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
