package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/auth"
	"github.com/fadilmartias/applicant-portal/internal/dto"
	"github.com/fadilmartias/applicant-portal/internal/middleware"
	"github.com/fadilmartias/applicant-portal/internal/model"
	"github.com/fadilmartias/applicant-portal/internal/usecase"
	"github.com/fadilmartias/applicant-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"join":     strings.Join,
	"fileLink": fileLink,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"years": func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	},
}).ParseFS(templateFS, "templates/*.html"))

type AdminHandler struct {
	uc   usecase.ApplicationUsecaseInterface
	gate *auth.Gate
}

func NewAdminHandler(uc usecase.ApplicationUsecaseInterface, gate *auth.Gate) *AdminHandler {
	return &AdminHandler{uc: uc, gate: gate}
}

func (h *AdminHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/admin/login", middleware.RateLimiter(10, 1*time.Minute), h.Login)
	app.Post("/api/admin/logout", h.Logout)

	admin := app.Group("/admin", middleware.AdminPages(h.gate))
	admin.Get("/login", h.LoginPage)
	admin.Get("/", h.Dashboard)
}

type loginRequest struct {
	Password string `json:"password" form:"password"`
}

// Login accepts JSON or a plain HTML form post. Form posts are answered with
// redirects so the login page works without scripts.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body.",
		}, err)
	}

	cookie, err := h.gate.Login(req.Password)
	if isFormPost(c) {
		if err != nil {
			return c.Redirect(middleware.AdminLoginPath+"?error=1", fiber.StatusSeeOther)
		}
		c.Cookie(cookie)
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}

	switch {
	case errors.Is(err, auth.ErrPasswordNotConfigured):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Admin password is not configured on server.",
		})
	case err != nil:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: "Invalid admin password.",
		})
	}

	c.Cookie(cookie)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Logged in",
	})
}

func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.gate.LogoutCookie())
	if isFormPost(c) {
		return c.Redirect(middleware.AdminLoginPath, fiber.StatusSeeOther)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Logged out",
	})
}

func isFormPost(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationForm)
}

func (h *AdminHandler) LoginPage(c *fiber.Ctx) error {
	if h.gate.IsAuthenticated(c.Cookies(h.gate.CookieName())) {
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}
	return render(c, "login.html", fiber.Map{
		"Failed": c.Query("error") != "",
	})
}

type dashboardView struct {
	List      dto.ApplicationList
	Query     string
	Position  string
	City      string
	Positions []string
	Error     string
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	view := dashboardView{
		Query:     strings.TrimSpace(c.Query("q")),
		Position:  strings.TrimSpace(c.Query("position")),
		City:      strings.TrimSpace(c.Query("city")),
		Positions: model.PositionOptions,
	}
	list, err := h.uc.List(c.UserContext(), dto.ApplicationFilter{
		Search:   view.Query,
		Position: view.Position,
		City:     view.City,
	})
	if err != nil {
		log.Printf("admin dashboard: %v", err)
		view.Error = err.Error()
	}
	view.List = list
	return render(c, "dashboard.html", view)
}

func render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func fileLink(id, kind string) string {
	return "/api/applications/" + url.PathEscape(id) + "/files/" + kind
}
