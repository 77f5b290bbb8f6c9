package analytics

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/voltmart-backend/api/responses"
	analyticssvc "github.com/angelmondragon/voltmart-backend/internal/analytics"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

// Summary serves the admin dashboard KPIs. Callers pass either a preset
// (7d, 30d, 90d) or an explicit RFC3339 from/to pair.
func Summary(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		query := r.URL.Query()
		summary, err := svc.Summary(r.Context(), analyticssvc.RangeInput{
			Preset: strings.TrimSpace(query.Get("preset")),
			From:   strings.TrimSpace(query.Get("from")),
			To:     strings.TrimSpace(query.Get("to")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
