package http

import (
	"net/http"
	"strconv"

	"github.com/pfennigfuchs/pfennig/internal/finance/service"
	"github.com/pfennigfuchs/pfennig/pkg/httpx"
)

// AnalysisHandler serves the yearly aggregation endpoint.
type AnalysisHandler struct {
	AnalysisService *service.AnalysisService
}

func (h *AnalysisHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "")
		return
	}

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	summary, err := h.AnalysisService.YearlySummary(r.Context(), sess.UserID, year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, summary)
}
