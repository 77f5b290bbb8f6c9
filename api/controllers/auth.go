package controllers

import (
	"net/http"

	"github.com/angelmondragon/voltmart-backend/api/responses"
	"github.com/angelmondragon/voltmart-backend/api/validators"
	"github.com/angelmondragon/voltmart-backend/internal/adminauth"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

// AdminTokenHeader mirrors the issued access token for clients that read headers.
const AdminTokenHeader = "X-Voltmart-Token"

// AdminAuthLogin exchanges the configured admin credentials for a bearer token.
func AdminAuthLogin(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adminauth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithAdmin(r.Context(), result.Username), "admin.login")
		}
		w.Header().Set(AdminTokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}
