package handler

import (
	"net/http"

	"github.com/msomdec/victim-store/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. loginLimiter
// guards the credential endpoints.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, victims *service.VictimService, loginLimiter *service.TokenBucket, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	victimHandler := NewVictimHandler(victims)
	pageHandler := NewPageHandler(victims)

	protected := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(auth, fn)
	}
	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimit(loginLimiter, fn)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.Handle("POST /api/auth/register", limited(authHandler.HandleRegister))
	mux.Handle("POST /api/auth/login", limited(authHandler.HandleLogin))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", protected(authHandler.HandleMe))

	mux.Handle("GET /api/victims", protected(victimHandler.HandleList))
	mux.Handle("POST /api/victims", protected(victimHandler.HandleCreate))
	mux.Handle("GET /api/victims/{id}", protected(victimHandler.HandleGet))
	mux.Handle("PATCH /api/victims/{id}", protected(victimHandler.HandleUpdate))
	mux.Handle("PUT /api/victims/{id}", protected(victimHandler.HandleReplace))
	mux.Handle("DELETE /api/victims/{id}", protected(victimHandler.HandleDelete))
	mux.Handle("GET /api/vulnerable/victim", protected(victimHandler.HandleLookup))

	mux.Handle("GET /", protected(pageHandler.HandleIndex))
	mux.Handle("POST /ui/victims", protected(pageHandler.HandleCreate))
	mux.Handle("DELETE /ui/victims/{id}", protected(pageHandler.HandleDelete))
}
