package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Faculty     FacultyRepository
	Ambient     AmbientRepository
	Group       GroupRepository
	Person      PersonRepository
	TimeModel   TimeModelRepository
	Period      PeriodRepository
	Assignment  AssignmentRepository
	Weekly      WeeklyRepository
	Reservation ReservationRepository
	Conflict    ConflictIndex
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		Faculty:     NewFacultyRepo(db),
		Ambient:     NewAmbientRepo(db),
		Group:       NewGroupRepo(db),
		Person:      NewPersonRepo(db),
		TimeModel:   NewTimeModelRepo(db),
		Period:      NewPeriodRepo(db),
		Assignment:  NewAssignmentRepo(db),
		Weekly:      NewWeeklyRepo(db),
		Reservation: NewReservationRepo(db),
		Conflict:    NewConflictIndex(db),
	}
}

// Transaction 在单个数据库事务内执行 fn，fn 返回错误时整体回滚
// fn 收到的聚合中所有 Repository 都绑定到同一事务连接
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 测试场景：聚合由 mock 构成，无真实事务，直接执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// ── PostgreSQL 错误翻译 ──

type sqlStateErr interface {
	SQLState() string
	Error() string
}

// IsUniqueViolation 判断是否为唯一约束冲突（SQLSTATE 23505）
// 预约引擎依赖该判定把提交竞态翻译为业务冲突错误
func IsUniqueViolation(err error) bool {
	var pgErr sqlStateErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
