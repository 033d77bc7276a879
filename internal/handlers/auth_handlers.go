package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/services"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "smile_session"

// User-facing login outcomes. Unknown identifier and wrong password share one
// message so the form never reveals whether an account exists.
const (
	msgMissingFields      = "Please enter both username and password."
	msgInvalidCredentials = "Invalid username or password"
	msgAccountDeactivated = "Your account has been deactivated. Please contact the administrator."
	msgLoginFailed        = "Login failed, please try again."
)

// AuthHandlers serves the staff login gate.
type AuthHandlers struct {
	authSvc      services.AuthService
	sessions     session.Store
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandlers(authSvc services.AuthService, sessions session.Store, cookieTTL time.Duration, cookieSecure bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		sessions:     sessions,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

type loginPage struct {
	Error    string
	Username string
}

// ShowLogin renders the login form. A request that already carries a valid
// session is redirected straight to its dashboard.
func (h *AuthHandlers) ShowLogin(c echo.Context) error {
	if done, err := h.redirectAuthenticated(c); done {
		return err
	}
	return c.Render(http.StatusOK, "login.html", loginPage{})
}

// Login verifies the submitted credentials and establishes a session. The
// session guard runs first: a valid session wins over whatever is in the body.
func (h *AuthHandlers) Login(c echo.Context) error {
	if done, err := h.redirectAuthenticated(c); done {
		return err
	}

	username := c.FormValue("username")
	password := c.FormValue("password")

	prior := ""
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		prior = cookie.Value
	}

	result, err := h.authSvc.Login(c.Request().Context(), username, password, prior)
	if err != nil {
		// The submitted username is echoed back, the password never is.
		page := loginPage{Username: strings.TrimSpace(username)}
		switch {
		case errors.Is(err, services.ErrMissingFields):
			page.Error = msgMissingFields
		case errors.Is(err, services.ErrInvalidCredentials):
			page.Error = msgInvalidCredentials
		case errors.Is(err, services.ErrAccountDeactivated):
			page.Error = msgAccountDeactivated
		default:
			log.Printf("login failed for identifier %q: %v", strings.TrimSpace(username), err)
			page.Error = msgLoginFailed
		}
		return c.Render(http.StatusOK, "login.html", page)
	}

	c.SetCookie(h.sessionCookie(result.SessionID, h.cookieTTL))
	return c.Redirect(http.StatusFound, result.RedirectPath)
}

// Logout destroys the session and sends the browser back to the login form.
func (h *AuthHandlers) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authSvc.Logout(c.Request().Context(), cookie.Value); err != nil {
			log.Printf("logout: failed to delete session: %v", err)
		}
	}
	c.SetCookie(h.expiredCookie())
	return c.Redirect(http.StatusFound, "/login")
}

// redirectAuthenticated is the session guard. It returns (true, redirect)
// when the request carries a valid session, before any form processing. A
// session holding an unroutable role is destroyed and the guard falls
// through to the form.
func (h *AuthHandlers) redirectAuthenticated(c echo.Context) (bool, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return false, nil
	}

	data, err := h.sessions.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		log.Printf("session guard: lookup failed: %v", err)
		return false, nil
	}
	if data == nil {
		return false, nil
	}

	path, err := data.Role.DashboardPath()
	if err != nil {
		log.Printf("session guard: destroying session with unroutable role %q", data.Role)
		if err := h.sessions.Delete(c.Request().Context(), cookie.Value); err != nil {
			log.Printf("session guard: failed to destroy session: %v", err)
		}
		c.SetCookie(h.expiredCookie())
		return false, nil
	}

	return true, c.Redirect(http.StatusFound, path)
}

func (h *AuthHandlers) sessionCookie(id string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandlers) expiredCookie() *http.Cookie {
	cookie := h.sessionCookie("", 0)
	cookie.MaxAge = -1
	return cookie
}
