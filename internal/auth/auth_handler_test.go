package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-vacation/internal/auth"
	autherrors "go-vacation/internal/auth/errors"
	authMock "go-vacation/internal/auth/mock"
	"go-vacation/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func cookieNames(w *httptest.ResponseRecorder) []string {
	var names []string
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
	}
	return names
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false)
	router := setupAuthRouter()
	router.POST("/login", handler.Login)

	body, _ := json.Marshal(auth.LoginRequest{Email: "ana@example.com", Password: "password123"})
	pair := auth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

	t.Run("web client gets cookies", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), "ana@example.com", "password123").
			Return(pair, auth.AuthResponse{Email: "ana@example.com"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.ElementsMatch(t, []string{"access_token", "refresh_token"}, cookieNames(w))
	})

	t.Run("mobile client gets tokens in body only", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), "ana@example.com", "password123").
			Return(pair, auth.AuthResponse{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "MOBILE")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, cookieNames(w))
		assert.Contains(t, w.Body.String(), "access-token")
	})

	t.Run("negative invalid credentials", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), "ana@example.com", "password123").
			Return(auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter()
	router.POST("/register", auth.NewHandler(mockService, false).Register)

	body, _ := json.Marshal(validRegister())

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{Username: "ana"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative duplicate email is 409", func(t *testing.T) {
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered)

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("negative password mismatch is 400", func(t *testing.T) {
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{}, autherrors.ErrPasswordMismatch)

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RefreshAndLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false)
	router := setupAuthRouter()
	router.POST("/refresh", handler.RefreshToken)
	router.POST("/logout", handler.Logout)

	t.Run("web refresh reads the cookie", func(t *testing.T) {
		mockService.EXPECT().
			RefreshToken(gomock.Any(), "old-refresh").
			Return(auth.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, auth.AuthResponse{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		req.Header.Set("X-Client-Type", "web")
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old-refresh"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, cookieNames(w), "refresh_token")
	})

	t.Run("negative web refresh without cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		req.Header.Set("X-Client-Type", "web")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout clears cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		for _, c := range w.Result().Cookies() {
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	})
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false)

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().GetMe(gomock.Any(), "user-1").Return(auth.AuthResponse{ID: "user-1"}, nil)

		router := setupAuthRouter()
		router.GET("/me", func(c *gin.Context) {
			c.Set(middleware.ContextUserID, "user-1")
			c.Next()
		}, handler.Me)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative anonymous", func(t *testing.T) {
		router := setupAuthRouter()
		router.GET("/me", handler.Me)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
