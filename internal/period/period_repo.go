package period

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Anchor is the minimum a profile needs for accrual.
type Anchor struct {
	ProfileID uuid.UUID
	HireDate  time.Time
}

//go:generate mockgen -source=period_repo.go -destination=mock/period_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Period) error
	ExistsByStart(ctx context.Context, profileID string, start time.Time) (bool, error)
	FindLatest(ctx context.Context, profileID string) (*Period, error)
	FindByProfile(ctx context.Context, profileID string) ([]Period, error)
	FindOpenWithBalance(ctx context.Context, profileID string) ([]Period, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Period, error)
	Update(ctx context.Context, p *Period) error
	ListAnchors(ctx context.Context) ([]Anchor, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn binds the session to the outer transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, p *Period) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) ExistsByStart(ctx context.Context, profileID string, start time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Period{}).
		Where("profile_id = ?", profileID).
		Where("start_date = ?", start).
		Count(&count).Error
	return count > 0, err
}

// FindLatest returns nil when the profile has no period yet.
func (r *repository) FindLatest(ctx context.Context, profileID string) (*Period, error) {
	var periods []Period
	err := r.conn(ctx).
		Where("profile_id = ?", profileID).
		Order("start_date DESC").
		Limit(1).
		Find(&periods).Error
	if err != nil || len(periods) == 0 {
		return nil, err
	}
	return &periods[0], nil
}

func (r *repository) FindByProfile(ctx context.Context, profileID string) ([]Period, error) {
	var periods []Period
	err := r.conn(ctx).
		Where("profile_id = ?", profileID).
		Order("start_date ASC").
		Find(&periods).Error
	return periods, err
}

func (r *repository) FindOpenWithBalance(ctx context.Context, profileID string) ([]Period, error) {
	var periods []Period
	err := r.conn(ctx).
		Where("profile_id = ?", profileID).
		Where("status = ?", StatusOpen).
		Where("available_days > 0").
		Order("start_date ASC").
		Find(&periods).Error
	return periods, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Period, error) {
	var p Period
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Period) error {
	return r.conn(ctx).
		Model(p).
		Select("available_days", "status", "updated_at").
		Updates(p).Error
}

func (r *repository) ListAnchors(ctx context.Context) ([]Anchor, error) {
	var anchors []Anchor
	err := r.conn(ctx).
		Table("profiles").
		Select("id AS profile_id, hire_date").
		Order("hire_date ASC").
		Scan(&anchors).Error
	return anchors, err
}
