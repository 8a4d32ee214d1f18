package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadilmartias/applicant-portal/internal/auth"
	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminApp(uc *fakeUsecase, gate *auth.Gate) *fiber.App {
	app := fiber.New()
	NewAdminHandler(uc, gate).RegisterRoutes(app)
	return app
}

func jsonLogin(password string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"`+password+`"}`))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "admin_session" {
			return c
		}
	}
	return nil
}

func TestLogin_JSON(t *testing.T) {
	app := adminApp(&fakeUsecase{}, testGate())

	resp, err := app.Test(jsonLogin("wrong"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid admin password.", decodeEnvelope(t, resp).Message)
	assert.Nil(t, sessionCookie(resp))

	resp, err = app.Test(jsonLogin(testPassword))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, testPassword, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 12*60*60, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestLogin_SessionSurvivesCookieUnsafePassword(t *testing.T) {
	gate := auth.NewGate(&config.AdminConfig{Password: "pa ss;word", CookieName: "admin_session"}, false)
	app := adminApp(&fakeUsecase{}, gate)

	resp, err := app.Test(jsonLogin("pa ss;word"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLogin_PasswordNotConfigured(t *testing.T) {
	gate := auth.NewGate(&config.AdminConfig{CookieName: "admin_session"}, false)

	resp, err := adminApp(&fakeUsecase{}, gate).Test(jsonLogin(""))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Admin password is not configured on server.", decodeEnvelope(t, resp).Message)
}

func TestLogin_FormRedirects(t *testing.T) {
	app := adminApp(&fakeUsecase{}, testGate())
	form := func(password string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader("password="+password))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	resp, err := app.Test(form(testPassword))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
	assert.NotNil(t, sessionCookie(resp))

	resp, err = app.Test(form("nope"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login?error=1", resp.Header.Get("Location"))
}

func TestLogout(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(adminCookie())

	resp, err := adminApp(&fakeUsecase{}, testGate()).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestAdminPages(t *testing.T) {
	created := uuid.New()
	uc := &fakeUsecase{list: dto.ApplicationList{
		Applicants: []dto.ApplicationRow{{
			ID:                  created,
			FullName:            "Ana <Silva>",
			Email:               "ana@example.com",
			CitiesCovered:       []string{"Lisbon", "Porto"},
			HasIdentityDocument: true,
		}},
		TotalCount:  1,
		CityOptions: []string{"Lisbon"},
		Warning:     "Showing compatibility data. Missing columns: city.",
	}}
	app := adminApp(uc, testGate())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/admin/login?error=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Invalid admin password.")

	req := httptest.NewRequest(http.MethodGet, "/admin?q=ana&city=Lisbon", nil)
	req.AddCookie(adminCookie())
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	page := string(body)
	assert.Contains(t, page, "Ana &lt;Silva&gt;")
	assert.Contains(t, page, "Lisbon, Porto")
	assert.Contains(t, page, "/api/applications/"+created.String()+"/files/identity-document")
	assert.Contains(t, page, "Missing columns: city.")
	assert.Equal(t, dto.ApplicationFilter{Search: "ana", City: "Lisbon"}, uc.filter)
}
