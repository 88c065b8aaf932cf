package profile

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindTeam(ctx context.Context, managerID string) ([]Profile, error)
	HasTeam(ctx context.Context, managerID string) (bool, error)
	FindManagerID(ctx context.Context, id string) (*uuid.UUID, error)
	EmployeeNumberTaken(ctx context.Context, number, exceptProfileID string) (bool, error)
	EmailTaken(ctx context.Context, email, exceptUserID string) (bool, error)
	Update(ctx context.Context, p *Profile) error
	UpdateOwner(ctx context.Context, o *Owner) error
	SetManager(ctx context.Context, id string, managerID *uuid.UUID) error
	MarkOnboarded(ctx context.Context, id string) error
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).
		Preload("Owner").
		Preload("Manager.Owner").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).
		Preload("Owner").
		Preload("Manager.Owner").
		First(&p, "user_id = ?", userID).Error
	return &p, err
}

func (r *repository) FindTeam(ctx context.Context, managerID string) ([]Profile, error) {
	var team []Profile
	err := r.conn(ctx).
		Preload("Owner").
		Where("manager_id = ?", managerID).
		Order("employee_number ASC").
		Find(&team).Error
	return team, err
}

func (r *repository) HasTeam(ctx context.Context, managerID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Profile{}).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	return count > 0, err
}

// FindManagerID returns nil for a profile without a manager.
func (r *repository) FindManagerID(ctx context.Context, id string) (*uuid.UUID, error) {
	var p Profile
	err := r.conn(ctx).
		Select("id", "manager_id").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return p.ManagerID, nil
}

func (r *repository) EmployeeNumberTaken(ctx context.Context, number, exceptProfileID string) (bool, error) {
	var count int64
	q := r.conn(ctx).
		Model(&Profile{}).
		Where("employee_number = ?", number)
	if exceptProfileID != "" {
		q = q.Where("id <> ?", exceptProfileID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) EmailTaken(ctx context.Context, email, exceptUserID string) (bool, error) {
	var count int64
	q := r.conn(ctx).
		Model(&Owner{}).
		Where("LOWER(email) = LOWER(?)", email)
	if exceptUserID != "" {
		q = q.Where("id <> ?", exceptUserID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.conn(ctx).
		Model(p).
		Select("employee_number", "job_title", "org_unit", "location", "birth_date", "updated_at").
		Updates(p).Error
}

func (r *repository) UpdateOwner(ctx context.Context, o *Owner) error {
	return r.conn(ctx).
		Model(o).
		Select("first_name", "last_name", "email").
		Updates(o).Error
}

func (r *repository) SetManager(ctx context.Context, id string, managerID *uuid.UUID) error {
	return r.conn(ctx).
		Model(&Profile{}).
		Where("id = ?", id).
		Update("manager_id", managerID).Error
}

func (r *repository) MarkOnboarded(ctx context.Context, id string) error {
	return r.conn(ctx).
		Model(&Profile{}).
		Where("id = ?", id).
		Update("onboarding_complete", true).Error
}
