package onboarding_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-vacation/internal/middleware"
	"go-vacation/internal/onboarding"
	onboardingerrors "go-vacation/internal/onboarding/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeOnboardingService struct {
	RequiresFn func(ctx context.Context, userID string) (bool, error)
	StatusFn   func(ctx context.Context, userID string) (onboarding.StatusResponse, error)
	CompleteFn func(ctx context.Context, userID string, req onboarding.CompleteRequest) (onboarding.StatusResponse, error)
}

func (f *fakeOnboardingService) RequiresOnboarding(ctx context.Context, userID string) (bool, error) {
	return f.RequiresFn(ctx, userID)
}
func (f *fakeOnboardingService) Status(ctx context.Context, userID string) (onboarding.StatusResponse, error) {
	return f.StatusFn(ctx, userID)
}
func (f *fakeOnboardingService) Complete(ctx context.Context, userID string, req onboarding.CompleteRequest) (onboarding.StatusResponse, error) {
	return f.CompleteFn(ctx, userID, req)
}

func newTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestOnboardingHandler_Complete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeOnboardingService{
			CompleteFn: func(ctx context.Context, userID string, req onboarding.CompleteRequest) (onboarding.StatusResponse, error) {
				assert.Equal(t, "user-1", userID)
				if assert.Len(t, req.Balances, 1) {
					assert.Equal(t, 0, *req.Balances[0].AvailableDays)
				}
				return onboarding.StatusResponse{Completed: true}, nil
			},
		}
		body := `{"balances":[{"period_id":"8f14e45f-ceea-4d7a-9c1b-3f8f0b3e1a2b","available_days":0}]}`
		c, w := newTestContext(http.MethodPost, "/api/v1/onboarding", body)
		c.Set(middleware.ContextUserID, "user-1")

		onboarding.NewHandler(svc).Complete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"completed":true`)
	})

	t.Run("negative missing balance value", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/api/v1/onboarding",
			`{"balances":[{"period_id":"8f14e45f-ceea-4d7a-9c1b-3f8f0b3e1a2b"}]}`)

		onboarding.NewHandler(&fakeOnboardingService{}).Complete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative already onboarded", func(t *testing.T) {
		svc := &fakeOnboardingService{
			CompleteFn: func(ctx context.Context, userID string, req onboarding.CompleteRequest) (onboarding.StatusResponse, error) {
				return onboarding.StatusResponse{}, onboardingerrors.ErrAlreadyOnboarded
			},
		}
		c, w := newTestContext(http.MethodPost, "/api/v1/onboarding", `{"balances":[]}`)

		onboarding.NewHandler(svc).Complete(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestOnboardingHandler_Status(t *testing.T) {
	svc := &fakeOnboardingService{
		StatusFn: func(ctx context.Context, userID string) (onboarding.StatusResponse, error) {
			return onboarding.StatusResponse{Periods: []onboarding.PeriodResponse{{ID: "p-1", AvailableDays: 30}}}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/api/v1/onboarding", "")

	onboarding.NewHandler(svc).Status(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p-1")
}
