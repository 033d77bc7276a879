package handlers

import (
	"net/http"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/common"

	"github.com/labstack/echo/v4"
)

// PageHandlers serves the public landing page and the role dashboards.
// The dashboards themselves are thin placeholders, the routes exist so the
// login gate has real redirect targets and role enforcement.
type PageHandlers struct{}

func NewPageHandlers() *PageHandlers {
	return &PageHandlers{}
}

type dashboardPage struct {
	Title     string
	FirstName string
	LastName  string
}

// Home renders the public marketing page.
func (h *PageHandlers) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", nil)
}

func (h *PageHandlers) dashboard(c echo.Context, title string) error {
	data, ok := common.GetSessionFromContext(c.Request().Context())
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Render(http.StatusOK, "dashboard.html", dashboardPage{
		Title:     title,
		FirstName: data.FirstName,
		LastName:  data.LastName,
	})
}

func (h *PageHandlers) AdminDashboard(c echo.Context) error {
	return h.dashboard(c, "Admin Dashboard")
}

func (h *PageHandlers) DentistDashboard(c echo.Context) error {
	return h.dashboard(c, "Dentist Dashboard")
}

func (h *PageHandlers) FrontdeskDashboard(c echo.Context) error {
	return h.dashboard(c, "Front Desk Dashboard")
}
