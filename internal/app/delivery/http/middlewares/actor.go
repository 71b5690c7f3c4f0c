package middlewares

import (
	"context"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/utils"
	"net/http"
	"strings"
)

// Actor places the authenticated actor identity from an already-issued JWT
// into the request context. Authentication itself happens outside this
// service; a request without a usable token proceeds with no actor recorded.
func (m *Middlewares) Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		actorID, role, err := utils.ParseActorClaims(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ACTOR_ID_KEY, actorID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_ACTOR_ROLE_KEY, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
