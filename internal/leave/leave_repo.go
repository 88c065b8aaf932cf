package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	CreateAllocations(ctx context.Context, allocations []Allocation) error
	DeleteAllocations(ctx context.Context, leaveID string) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	FindByRequester(ctx context.Context, requesterID string) ([]Leave, error)
	FindByManager(ctx context.Context, managerProfileID string, status Status) ([]Leave, error)
	FindByStatus(ctx context.Context, status Status) ([]Leave, error)
	FindTakenInOrgUnit(ctx context.Context, orgUnit string) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
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

func (r *repository) withDetails(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Profile.Owner").
		Preload("Profile.Manager.Owner").
		Preload("Allocations")
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) CreateAllocations(ctx context.Context, allocations []Allocation) error {
	if len(allocations) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&allocations).Error
}

func (r *repository) DeleteAllocations(ctx context.Context, leaveID string) error {
	return r.conn(ctx).
		Where("leave_id = ?", leaveID).
		Delete(&Allocation{}).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.withDetails(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

// FindByIDForUpdate row-locks the leave for the rest of the transaction
// before loading it with its relations.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	var locked Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&locked, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *repository) FindByRequester(ctx context.Context, requesterID string) ([]Leave, error) {
	var leaves []Leave
	err := r.withDetails(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByManager(ctx context.Context, managerProfileID string, status Status) ([]Leave, error) {
	var leaves []Leave
	err := r.withDetails(ctx).
		Joins("JOIN profiles ON profiles.id = leave_requests.profile_id").
		Where("profiles.manager_id = ?", managerProfileID).
		Where("leave_requests.status = ?", status).
		Order("leave_requests.created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatus(ctx context.Context, status Status) ([]Leave, error) {
	var leaves []Leave
	err := r.withDetails(ctx).
		Where("status = ?", status).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindTakenInOrgUnit(ctx context.Context, orgUnit string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Joins("JOIN profiles ON profiles.id = leave_requests.profile_id").
		Where("profiles.org_unit = ?", orgUnit).
		Where("leave_requests.status IN ?", TakenStatuses).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).
		Model(l).
		Omit(clause.Associations).
		Select(
			"start_date", "end_date", "total_days", "status",
			"manager_approved_by", "manager_approved_at",
			"hr_approved_by", "hr_approved_at",
			"rejected_by", "rejected_at", "rejection_reason",
			"updated_at",
		).
		Updates(l).Error
}
