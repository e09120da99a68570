package httpgin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irynavol/seatmap-go/internal/domain"
)

func viewRouter(t *testing.T, stats *domain.OccupancyStats) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/view", func(c *gin.Context) {
		writeView(c, *stats)
	})
	return r
}

func TestWriteViewSetsWeakETag(t *testing.T) {
	stats := domain.OccupancyStats{TotalSeats: 8, OccupiedSeats: 2, Percentage: 25}
	r := viewRouter(t, &stats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/view", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("ETag"), `W/"`))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), `"total_seats":8`)
}

func TestWriteViewAnswersMatchingTagWith304(t *testing.T) {
	stats := domain.OccupancyStats{TotalSeats: 8, OccupiedSeats: 2, Percentage: 25}
	r := viewRouter(t, &stats)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/view", nil))
	tag := first.Header().Get("ETag")
	require.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.Header.Set("If-None-Match", tag)
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)

	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())

	// A changed plan must not answer 304 against the stale tag.
	stats.OccupiedSeats = 3
	third := httptest.NewRecorder()
	r.ServeHTTP(third, req)
	assert.Equal(t, http.StatusOK, third.Code)
	assert.NotEqual(t, tag, third.Header().Get("ETag"))
}
