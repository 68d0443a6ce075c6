package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/config"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/jwt"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrPersonNotFound     = errors.New("人员不存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrPersonDisabled     = errors.New("账号已停用")
	ErrTokenRevoked       = errors.New("token 已失效")
)

// AuthService 认证业务接口
// 登录签发 access/refresh 双 Token；登出把 jti 加入 Redis 黑名单
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, ci string) (*dto.PersonResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	person, err := s.repo.Person.GetByEmail(ctx, normalizeName(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露邮箱是否存在
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}
	if !person.IsActive {
		return nil, ErrPersonDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	roles, global, facultyIDs, err := s.loadScope(ctx, person.CI)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(person, roles, global, facultyIDs)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("查询 Token 黑名单失败", zap.Error(err))
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	person, err := s.repo.Person.GetByCI(ctx, claims.PersonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}
	if !person.IsActive {
		return nil, ErrPersonDisabled
	}

	// 角色可能已变更，重新加载授权范围
	roles, global, facultyIDs, err := s.loadScope(ctx, person.CI)
	if err != nil {
		return nil, err
	}

	// 旧 refresh token 立即作废（轮换）
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Error("加入 Token 黑名单失败", zap.Error(err))
			return nil, err
		}
	}

	return s.issueTokens(person, roles, global, facultyIDs)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims.ExpiresAt == nil {
		// Redis 降级时登出退化为客户端丢弃 Token
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		s.logger.Error("加入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, ci string) (*dto.PersonResponse, error) {
	person, err := s.repo.Person.GetByCI(ctx, ci)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}

	roles, global, facultyIDs, err := s.loadScope(ctx, ci)
	if err != nil {
		return nil, err
	}

	return &dto.PersonResponse{
		CI:         person.CI,
		Name:       person.PersonName,
		Email:      person.Email,
		Roles:      roles,
		Global:     global,
		FacultyIDs: facultyIDs,
	}, nil
}

// ────────────────────── 辅助 ──────────────────────

// loadScope 汇总人员角色为授权范围：
// 任一角色 faculty_id 为 NULL 即全局，否则取各角色院系的并集
func (s *authService) loadScope(ctx context.Context, ci string) (roles []string, global bool, facultyIDs []int, err error) {
	personRoles, err := s.repo.Person.ListRoles(ctx, ci)
	if err != nil {
		s.logger.Error("查询人员角色失败", zap.Error(err))
		return nil, false, nil, err
	}

	seenRole := make(map[string]struct{}, len(personRoles))
	seenFaculty := make(map[int]struct{}, len(personRoles))
	for _, role := range personRoles {
		name := strings.ToLower(role.RoleName)
		if _, ok := seenRole[name]; !ok {
			seenRole[name] = struct{}{}
			roles = append(roles, name)
		}
		if role.FacultyID == nil {
			global = true
			continue
		}
		if _, ok := seenFaculty[*role.FacultyID]; !ok {
			seenFaculty[*role.FacultyID] = struct{}{}
			facultyIDs = append(facultyIDs, *role.FacultyID)
		}
	}
	if global {
		facultyIDs = nil
	}
	return roles, global, facultyIDs, nil
}

func (s *authService) issueTokens(person *model.Person, roles []string, global bool, facultyIDs []int) (*dto.LoginResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(person.CI, roles, global, facultyIDs)
	if err != nil {
		s.logger.Error("生成 Access Token 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(person.CI, roles, global, facultyIDs)
	if err != nil {
		s.logger.Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Person: dto.PersonResponse{
			CI:         person.CI,
			Name:       person.PersonName,
			Email:      person.Email,
			Roles:      roles,
			Global:     global,
			FacultyIDs: facultyIDs,
		},
	}, nil
}
