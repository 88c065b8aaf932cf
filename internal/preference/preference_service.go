// Package preference stores per-user UI settings in Redis.
package preference

import (
	"context"
	"errors"

	preferenceerrors "go-vacation/internal/preference/errors"
	"go-vacation/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

const themeKeyPrefix = "preferences:theme:"

type PreferencesResponse struct {
	Theme string `json:"theme"`
}

type Service interface {
	Get(ctx context.Context, userID string) (PreferencesResponse, error)
	SetTheme(ctx context.Context, userID, theme string) (PreferencesResponse, error)
}

type service struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("preference.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preference.service")
	}
	return &service{rdb: rdb, logger: l}
}

func ThemeKey(userID string) string {
	return themeKeyPrefix + userID
}

func ValidTheme(theme string) bool {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Get falls back to the system theme when nothing was stored.
func (s *service) Get(ctx context.Context, userID string) (PreferencesResponse, error) {
	theme, err := s.rdb.Get(ctx, ThemeKey(userID)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && !ValidTheme(theme)) {
		return PreferencesResponse{Theme: ThemeSystem}, nil
	}
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get theme failed", zap.String("user_id", userID), zap.Error(err))
		return PreferencesResponse{}, err
	}
	return PreferencesResponse{Theme: theme}, nil
}

func (s *service) SetTheme(ctx context.Context, userID, theme string) (PreferencesResponse, error) {
	if !ValidTheme(theme) {
		return PreferencesResponse{}, preferenceerrors.ErrInvalidTheme
	}
	if err := s.rdb.Set(ctx, ThemeKey(userID), theme, 0).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("set theme failed", zap.String("user_id", userID), zap.Error(err))
		return PreferencesResponse{}, err
	}
	return PreferencesResponse{Theme: theme}, nil
}
