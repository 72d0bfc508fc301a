package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/locale"
	"github.com/fjod/go_shop/internal/shop"
	"github.com/fjod/go_shop/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionHeader = "X-Shop-Session"
	SessionCookie = "shop_session"
)

type ctxKey int

const visitorKey ctxKey = iota

// SessionMiddleware identifies the shopper by header or cookie and issues
// a new session id when neither is present. The resolved locale is
// attached too: ?locale= is an explicit choice, Accept-Language is only a
// hint for new sessions.
func SessionMiddleware(defaultLocale locale.Locale, sessionTTL time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					id = c.Value
				}
			}
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/shop",
				MaxAge:   int(sessionTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(SessionHeader, id)

			v := shop.Visitor{SessionID: id, Locale: resolveLocale(r, defaultLocale)}
			if code := r.URL.Query().Get("locale"); code != "" {
				_, v.Explicit = locale.Lookup(code)
			}

			ctx := context.WithValue(r.Context(), visitorKey, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(r *http.Request, fallback locale.Locale) locale.Locale {
	code := r.URL.Query().Get("locale")
	accept := r.Header.Get("Accept-Language")
	if _, ok := locale.Lookup(code); !ok && accept == "" {
		return fallback
	}
	return locale.Resolve(code, accept)
}

func visitorFromContext(ctx context.Context) (shop.Visitor, bool) {
	v, ok := ctx.Value(visitorKey).(shop.Visitor)
	return v, ok
}

// RequestLogger logs one line per request once it completes.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.FromContext(r.Context(), log).Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
