package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/voltmart-backend/api/responses"
	pkgAuth "github.com/angelmondragon/voltmart-backend/pkg/auth"
	"github.com/angelmondragon/voltmart-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

const bearerScheme = "bearer"

// AdminAuth guards the dashboard API. It accepts only a bearer token minted
// for the currently configured admin username.
func AdminAuth(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(err *pkgerrors.Error) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="voltmart-admin"`)
				responses.WriteError(r.Context(), logg, w, err)
			}

			token, ok := bearerToken(r)
			if !ok {
				reject(pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAdminToken(cfg, token)
			if err != nil {
				reject(pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if cfg.Username != "" && !strings.EqualFold(claims.Username, cfg.Username) {
				reject(pkgerrors.New(pkgerrors.CodeUnauthorized, "token subject is not the configured admin"))
				return
			}

			ctx := WithAdmin(r.Context(), claims.Username)
			if logg != nil {
				ctx = logg.WithAdmin(ctx, claims.Username)
				ctx = logg.WithField(ctx, "token_id", claims.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer" header.
// Any other scheme is treated as absent.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
