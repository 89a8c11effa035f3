package auth

import (
	"net/http"

	appErrors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/frahmantamala/portfolio/pkg/logger"
)

type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// Guard protects admin routes. A Guard without a verifier lets every request
// through, which is how disabled security is expressed.
type Guard struct {
	*transport.BaseHandler
	verifier TokenVerifier
}

func NewGuard(baseHandler *transport.BaseHandler, verifier TokenVerifier) *Guard {
	return &Guard{
		BaseHandler: baseHandler,
		verifier:    verifier,
	}
}

func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.verifier == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := g.ExtractTokenFromHeader(r)
		if token == "" {
			g.Logger.Warn("RequireAdmin: missing authorization token", "path", r.URL.Path)
			g.HandleServiceError(w, appErrors.NewUnauthorizedError("missing authorization token", appErrors.ErrCodeInvalidToken))
			return
		}

		claims, err := g.verifier.Verify(token)
		if err != nil {
			g.Logger.Warn("RequireAdmin: token rejected", "error", err, "path", r.URL.Path)
			g.HandleServiceError(w, err)
			return
		}

		if !claims.IsAdmin() {
			g.Logger.Warn("RequireAdmin: access denied", "subject", claims.Subject, "role", claims.Role)
			g.HandleServiceError(w, appErrors.NewForbiddenError("admin role required", appErrors.ErrCodeForbidden))
			return
		}

		ctx := appErrors.ContextWithSubject(r.Context(), claims.Subject)
		ctx = logger.With(ctx, "subject", claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
