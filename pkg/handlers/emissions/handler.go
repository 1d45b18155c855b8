package emissions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultTopN = 5

type Handler struct {
	emissions emissions.QueryService
}

func NewHandler(service emissions.QueryService) *Handler {
	return &Handler{
		emissions: service,
	}
}

// UserParam returns the {user_id} path segment, decoded exactly once. chi
// matches on RawPath when it is set, leaving the segment escaped.
func UserParam(r *http.Request) string {
	raw := chi.URLParam(r, "user_id")
	if r.URL.RawPath == "" {
		return raw
	}
	user, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return user
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserParam(r)

	summary := h.emissions.Summary(ctx, user)
	writeJSON(w, r, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserParam(r)

	monthly := h.emissions.Monthly(ctx, user)
	writeJSON(w, r, adapters.MapMonthlyDomainToApi(monthly))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, api.Users{Users: h.emissions.Users(r.Context())})
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserParam(r)

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := h.emissions.Activity(ctx, user, filter)
	writeJSON(w, r, adapters.MapEmissionRecordsDomainToApi(records))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	user := UserParam(r)

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := h.emissions.Activity(ctx, user, filter)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName(user)))
	if err := dataset.WriteCSV(w, records); err != nil {
		logger.Error().
			Err(err).
			Str("user", user).
			Msg("failed to write csv export")
	}
}

func (h *Handler) GetTopDays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserParam(r)
	query := r.URL.Query()

	n := defaultTopN
	if raw := query.Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid 'n' parameter. Expected a positive integer", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	filter, err := parseFilter(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := h.emissions.TopDays(ctx, user, filter, n)
	writeJSON(w, r, adapters.MapEmissionRecordsDomainToApi(records))
}

func (h *Handler) GetCategoryTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserParam(r)

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	days := h.emissions.CategoryTrend(ctx, user, filter)
	writeJSON(w, r, adapters.MapDailyCategoryDomainToApi(days))
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserParam(r)

	status := h.emissions.Budget(ctx, user)
	writeJSON(w, r, adapters.MapBudgetStatusDomainToApi(status))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, adapters.MapDatasetToHealth(h.emissions.Dataset(r.Context())))
}

// ExportFileName is the attachment name of a user's CSV export.
func ExportFileName(user string) string {
	return strings.TrimSpace(user) + "_emissions.csv"
}

func parseFilter(query url.Values) (domain.ActivityFilter, error) {
	return emissions.ParseFilter(query.Get("from"), query.Get("to"), query["category"])
}

func writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
