package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/testsupport"
)

type fakeStats struct {
	counts map[domain.ApplicationStatus]int64
	calls  int
}

func (f *fakeStats) StatusCounts(context.Context) (map[domain.ApplicationStatus]int64, error) {
	f.calls++
	return f.counts, nil
}

func TestStatsAggregatesAndCaches(t *testing.T) {
	stats := &fakeStats{counts: map[domain.ApplicationStatus]int64{
		domain.StatusSubmitted:  4,
		domain.StatusProcessing: 2,
		domain.StatusCompleted:  1,
		domain.StatusRejected:   0,
	}}
	cache := testsupport.NewFakeCache()
	h := &Handler{Log: log.New(io.Discard, "", 0), Repo: stats, Cache: cache, TTL: 300}

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil))
		return rec
	}

	rec := get()
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Response statsResponse `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.EqualValues(t, 7, env.Response.Total)
	assert.EqualValues(t, 4, env.Response.Counts[domain.StatusSubmitted])

	// агрегат дорогой: повторное чтение — из кэша
	require.Equal(t, http.StatusOK, get().Code)
	assert.Equal(t, 1, stats.calls)
	assert.True(t, cache.Has(domain.CacheKeyDashboardStats()))
}
