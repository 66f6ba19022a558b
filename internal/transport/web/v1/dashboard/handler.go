package dashboard

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Duonganhdu2002/government-sub000/internal/cacheaside"
	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

const storeTimeout = 10 * time.Second

type Handler struct {
	Log   *log.Logger
	Repo  domain.DashboardRepo
	Cache domain.Cache

	TTL int // секунд; агрегат дорогой, TTL длиннее обычного
}

type statsResponse struct {
	Counts map[domain.ApplicationStatus]int64 `json:"counts"`
	Total  int64                              `json:"total"`
}

// Stats godoc
// @Summary  Applications per status (staff)
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} domain.APIEnvelope{response=statsResponse}
// @Failure  401 {object} domain.APIEnvelope
// @Failure  403 {object} domain.APIEnvelope
// @Failure  504 {object} domain.APIEnvelope
// @Router   /api/v1/dashboard/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "dashboard.stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	ttl := h.TTL
	if ttl <= 0 {
		ttl = domain.DashboardCacheTTL
	}

	resp, _, err := cacheaside.GetOrLoad(ctx, h.Cache, h.Log,
		domain.CacheKeyDashboardStats(), ttl,
		func(ctx context.Context) (statsResponse, bool, error) {
			counts, lerr := h.Repo.StatusCounts(ctx)
			if lerr != nil {
				return statsResponse{}, false, lerr
			}
			var total int64
			for _, n := range counts {
				total += n
			}
			// нулевой агрегат — валидный результат, кэшируем как обычный
			return statsResponse{Counts: counts, Total: total}, true, nil
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "total", resp.Total)
	v1.WriteOKResponse(w, r, resp)
}
