package leave

import (
	"context"
	"encoding/json"
	"time"

	"go-vacation/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	CalendarCacheKey = "leaves:calendar:approved"
	calendarCacheTTL = 10 * time.Minute
)

// CalendarEvents lists APPROVED_FINAL leaves. Results are cached until the
// next final approval.
func (s *service) CalendarEvents(ctx context.Context) ([]CalendarEvent, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CalendarCacheKey).Result(); err == nil {
			var resp []CalendarEvent
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CalendarCacheKey, func() (interface{}, error) {
		leaves, err := s.repo.FindByStatus(ctx, StatusApprovedFinal)
		if err != nil {
			return nil, err
		}

		resp := make([]CalendarEvent, 0, len(leaves))
		for _, l := range leaves {
			resp = append(resp, mapToCalendarEvent(l))
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, CalendarCacheKey, jsonData, calendarCacheTTL).Err(); err != nil {
					contextutil.GetLogger(ctx, s.logger).Warn("cache calendar events failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]CalendarEvent), nil
}

func (s *service) invalidateCalendar(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CalendarCacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate calendar cache",
			zap.Error(err),
			zap.String("key", CalendarCacheKey),
		)
	}
}
