package middleware

import (
	"net/http"
	"strings"

	"github.com/josh-kwaku/card-ledger/internal/auth"
	"github.com/josh-kwaku/card-ledger/internal/handler"
	"github.com/josh-kwaku/card-ledger/internal/logging"
)

// Auth requires a bearer token signed with secret and stores its client id in
// the request context. With an empty secret every request is treated as the
// anonymous client.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				ctx := auth.ContextWithClientID(r.Context(), auth.AnonymousClientID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				logging.FromContext(r.Context()).Debug("rejected bearer token", "error", err)
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			ctx := auth.ContextWithClientID(r.Context(), claims.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
