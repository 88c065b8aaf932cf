package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("middle page", func(t *testing.T) {
		got, meta := response.Paginate(items, 2, 2)

		assert.Equal(t, []int{3, 4}, got)
		assert.Equal(t, int64(5), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("page past the end", func(t *testing.T) {
		got, _ := response.Paginate(items, 9, 2)

		assert.Empty(t, got)
	})

	t.Run("defaults for invalid input", func(t *testing.T) {
		got, meta := response.Paginate(items, 0, 0)

		assert.Len(t, got, 5)
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 10, meta.PageSize)
	})
}

func TestAbortError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("app error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.AbortError(c, apperror.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.True(t, c.IsAborted())
		var env map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, false, env["ok"])
		assert.Equal(t, apperror.CodeForbidden, env["error"].(map[string]any)["code"])
	})

	t.Run("plain error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.AbortError(c, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
