package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// AmbientRepository 场地及其楼栋/类型数据访问接口
type AmbientRepository interface {
	CreateType(ctx context.Context, ambientType *model.AmbientType) error
	ListTypes(ctx context.Context) ([]model.AmbientType, error)

	CreateBlock(ctx context.Context, block *model.Block) error
	GetBlockByID(ctx context.Context, id int) (*model.Block, error)
	ListBlocks(ctx context.Context, facultyID int) ([]model.Block, error)

	Create(ctx context.Context, ambient *model.Ambient) error
	GetByID(ctx context.Context, id int) (*model.Ambient, error)
	GetByIDs(ctx context.Context, ids []int) ([]model.Ambient, error)
	List(ctx context.Context, blockID int, onlyActive bool) ([]model.Ambient, error)
	Update(ctx context.Context, ambient *model.Ambient) error
}

type ambientRepo struct {
	db *gorm.DB
}

// NewAmbientRepo 创建 AmbientRepository 实例
func NewAmbientRepo(db *gorm.DB) AmbientRepository {
	return &ambientRepo{db: db}
}

func (r *ambientRepo) CreateType(ctx context.Context, ambientType *model.AmbientType) error {
	return r.db.WithContext(ctx).Create(ambientType).Error
}

func (r *ambientRepo) ListTypes(ctx context.Context) ([]model.AmbientType, error) {
	var types []model.AmbientType
	err := r.db.WithContext(ctx).
		Order("type_name ASC").
		Find(&types).Error
	return types, err
}

func (r *ambientRepo) CreateBlock(ctx context.Context, block *model.Block) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *ambientRepo) GetBlockByID(ctx context.Context, id int) (*model.Block, error) {
	var block model.Block
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *ambientRepo) ListBlocks(ctx context.Context, facultyID int) ([]model.Block, error) {
	var blocks []model.Block
	db := r.db.WithContext(ctx)
	if facultyID > 0 {
		db = db.Where("faculty_id = ?", facultyID)
	}
	err := db.Order("block_name ASC").Find(&blocks).Error
	return blocks, err
}

func (r *ambientRepo) Create(ctx context.Context, ambient *model.Ambient) error {
	return r.db.WithContext(ctx).Create(ambient).Error
}

func (r *ambientRepo) GetByID(ctx context.Context, id int) (*model.Ambient, error) {
	var ambient model.Ambient
	err := r.db.WithContext(ctx).
		Preload("Block").
		Preload("AmbientType").
		Where("id = ?", id).
		First(&ambient).Error
	if err != nil {
		return nil, err
	}
	return &ambient, nil
}

func (r *ambientRepo) GetByIDs(ctx context.Context, ids []int) ([]model.Ambient, error) {
	var ambients []model.Ambient
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ambients).Error
	return ambients, err
}

func (r *ambientRepo) List(ctx context.Context, blockID int, onlyActive bool) ([]model.Ambient, error) {
	var ambients []model.Ambient
	db := r.db.WithContext(ctx)
	if blockID > 0 {
		db = db.Where("block_id = ?", blockID)
	}
	if onlyActive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("ambient_name ASC").Find(&ambients).Error
	return ambients, err
}

func (r *ambientRepo) Update(ctx context.Context, ambient *model.Ambient) error {
	return r.db.WithContext(ctx).Save(ambient).Error
}
