package middleware

import (
	"log"
	"net/http"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/common"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/models"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"

	"github.com/labstack/echo/v4"
)

// SessionCookieName must match the cookie the login handlers set.
const SessionCookieName = "smile_session"

// SessionMiddleware resolves the session cookie against the store and gates
// the dashboard routes.
type SessionMiddleware struct {
	sessions session.Store
}

func NewSessionMiddleware(sessions session.Store) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession loads the session into the request context and redirects
// unauthenticated browsers to the login form.
func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			data, err := m.sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				log.Printf("session middleware: lookup failed: %v", err)
				return c.Redirect(http.StatusFound, "/login")
			}
			if data == nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			ctx := common.WithSession(c.Request().Context(), cookie.Value, data)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireRole gates a route to one staff role. A logged-in user of another
// role is sent to their own dashboard; an unroutable role fails closed back
// to the login form.
func (m *SessionMiddleware) RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, ok := common.GetSessionFromContext(c.Request().Context())
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}

			if data.Role != role {
				ownPath, err := data.Role.DashboardPath()
				if err != nil {
					return c.Redirect(http.StatusFound, "/login")
				}
				return c.Redirect(http.StatusFound, ownPath)
			}

			return next(c)
		}
	}
}
