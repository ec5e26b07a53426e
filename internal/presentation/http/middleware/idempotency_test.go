package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukasmart/phoneshop-api/internal/infrastructure/database"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func idempotencyTestRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	router.POST("/pay",
		IdempotencyRequired(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"success": true, "calls": calls})
		},
	)
	return router, &calls
}

func TestIdempotencyRequiredReplaysDuplicate(t *testing.T) {
	router, calls := idempotencyTestRouter(t, uuid.New())

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-123")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	// Same key again: the handler must not run a second time
	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/pay", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-123")
	router.ServeHTTP(second, req)

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, *calls)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyRequiredDistinctKeysRunSeparately(t *testing.T) {
	router, calls := idempotencyTestRouter(t, uuid.New())

	for _, key := range []string{"key-a", "key-b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pay", nil)
		req.Header.Set(IdempotencyKeyHeader, key)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyRequiredMissingKeyRejected(t *testing.T) {
	router, calls := idempotencyTestRouter(t, uuid.New())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, *calls)
}
