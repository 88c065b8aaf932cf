package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	profileerrors "go-vacation/internal/profile/errors"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxChainDepth bounds the manager walk so that an already corrupted
// hierarchy cannot loop forever.
const maxChainDepth = 256

type Service interface {
	GetMe(ctx context.Context, userID string) (ProfileResponse, error)
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	GetTeam(ctx context.Context, userID string) ([]ProfileResponse, error)
	AssignManager(ctx context.Context, profileID string, req AssignManagerRequest) (ProfileResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetMe(ctx context.Context, userID string) (ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(p), nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var birthDate *time.Time
	if req.BirthDate != "" {
		d, err := dateutil.Parse(req.BirthDate)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidBirthDate
		}
		birthDate = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update profile begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	email := strings.TrimSpace(req.Email)
	taken, err := qtx.EmailTaken(ctx, email, p.UserID.String())
	if err != nil {
		return ProfileResponse{}, err
	}
	if taken {
		return ProfileResponse{}, profileerrors.ErrEmailTaken
	}

	number := strings.TrimSpace(req.EmployeeNumber)
	taken, err = qtx.EmployeeNumberTaken(ctx, number, p.ID.String())
	if err != nil {
		return ProfileResponse{}, err
	}
	if taken {
		return ProfileResponse{}, profileerrors.ErrEmployeeNumberTaken
	}

	p.Owner.FirstName = strings.TrimSpace(req.FirstName)
	p.Owner.LastName = strings.TrimSpace(req.LastName)
	p.Owner.Email = email
	p.EmployeeNumber = number
	p.JobTitle = strings.TrimSpace(req.JobTitle)
	p.OrgUnit = strings.TrimSpace(req.OrgUnit)
	p.Location = strings.TrimSpace(req.Location)
	p.BirthDate = birthDate

	if err := qtx.UpdateOwner(ctx, &p.Owner); err != nil {
		log.Error("update profile owner failed", zap.String("profile_id", p.ID.String()), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}
	if err := qtx.Update(ctx, p); err != nil {
		log.Error("update profile persist failed", zap.String("profile_id", p.ID.String()), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update profile commit failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	log.Info("profile updated", zap.String("profile_id", p.ID.String()))
	return mapToResponse(p), nil
}

func (s *service) GetTeam(ctx context.Context, userID string) ([]ProfileResponse, error) {
	me, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	team, err := s.repo.FindTeam(ctx, me.ID.String())
	if err != nil {
		return nil, err
	}

	resp := make([]ProfileResponse, 0, len(team))
	for i := range team {
		resp = append(resp, mapToResponse(&team[i]))
	}
	return resp, nil
}

// AssignManager sets or clears the manager of a profile. The new manager
// must not be the profile itself or report to it at any depth.
func (s *service) AssignManager(ctx context.Context, profileID string, req AssignManagerRequest) (ProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	pid, err := uuid.Parse(profileID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidProfileID
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidProfileID
		}
		if mid == pid {
			return ProfileResponse{}, profileerrors.ErrSelfManager
		}
		managerID = &mid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("assign manager begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, pid.String()); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if managerID != nil {
		if err := s.ensureNoCycle(ctx, qtx, pid, *managerID); err != nil {
			return ProfileResponse{}, err
		}
	}

	if err := qtx.SetManager(ctx, pid.String(), managerID); err != nil {
		log.Error("assign manager persist failed", zap.String("profile_id", profileID), zap.Error(err))
		return ProfileResponse{}, err
	}

	updated, err := qtx.FindByID(ctx, pid.String())
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("assign manager commit failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	log.Info("manager assigned",
		zap.String("profile_id", profileID),
		zap.Stringp("manager_id", req.ManagerID),
	)
	return mapToResponse(updated), nil
}

// ensureNoCycle walks up from the candidate manager and fails when the
// chain reaches the profile being edited.
func (s *service) ensureNoCycle(ctx context.Context, repo Repository, profileID, managerID uuid.UUID) error {
	current := managerID
	seen := map[uuid.UUID]bool{}
	for depth := 0; depth < maxChainDepth; depth++ {
		if current == profileID {
			return profileerrors.ErrManagerCycle
		}
		if seen[current] {
			return nil
		}
		seen[current] = true

		next, err := repo.FindManagerID(ctx, current.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if depth == 0 {
					return profileerrors.ErrManagerNotFound
				}
				return nil
			}
			return err
		}
		if next == nil {
			return nil
		}
		current = *next
	}
	return profileerrors.ErrManagerCycle
}
