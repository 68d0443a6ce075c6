package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/JosuePerezValenzuela/Api-Reservas/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-0123456789",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 168 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)

	token, err := mgr.GenerateAccessToken("1234567", []string{"manager"}, false, []int{3, 7})
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.PersonID != "1234567" {
		t.Errorf("PersonID 应为 1234567, 实际 %s", claims.PersonID)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType 应为 access, 实际 %s", claims.TokenType)
	}
	if claims.Global {
		t.Error("Global 应为 false")
	}
	if len(claims.FacultyIDs) != 2 || claims.FacultyIDs[0] != 3 || claims.FacultyIDs[1] != 7 {
		t.Errorf("FacultyIDs 应为 [3 7], 实际 %v", claims.FacultyIDs)
	}
	if claims.ID == "" {
		t.Error("jti 不应为空")
	}
}

func TestRefreshTokenType(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)

	token, err := mgr.GenerateRefreshToken("1234567", nil, true, nil)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType 应为 refresh, 实际 %s", claims.TokenType)
	}
	if !claims.Global {
		t.Error("Global 应为 true")
	}
}

func TestParseExpiredToken(t *testing.T) {
	mgr := newTestManager(-time.Minute)

	token, err := mgr.GenerateAccessToken("1234567", nil, true, nil)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("过期 Token 应返回 ErrTokenExpired, 实际 %v", err)
	}
}

func TestParseTokenWithWrongSecret(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-987654321",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := mgr.GenerateAccessToken("1234567", nil, true, nil)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("错误密钥应返回 ErrTokenInvalid, 实际 %v", err)
	}
}
