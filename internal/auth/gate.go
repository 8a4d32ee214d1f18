package auth

import (
	"crypto/subtle"
	"errors"
	"net/url"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/gofiber/fiber/v2"
)

const SessionTTL = 12 * time.Hour

var (
	ErrPasswordNotConfigured = errors.New("admin password is not configured on server")
	ErrInvalidPassword       = errors.New("invalid admin password")
)

// Gate guards admin routes with a single shared password. The session cookie
// holds the query-escaped password, so changing ADMIN_PASSWORD ends every
// session.
type Gate struct {
	password   string
	cookieName string
	secure     bool
}

func NewGate(cfg *config.AdminConfig, secure bool) *Gate {
	return &Gate{password: cfg.Password, cookieName: cfg.CookieName, secure: secure}
}

func (g *Gate) CookieName() string {
	return g.cookieName
}

// IsAuthenticated reports whether a session cookie value is valid. It is
// false whenever no password is configured.
func (g *Gate) IsAuthenticated(session string) bool {
	if session == "" {
		return false
	}
	password, err := url.QueryUnescape(session)
	if err != nil {
		return false
	}
	return g.matches(password)
}

func (g *Gate) matches(password string) bool {
	if g.password == "" || password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
}

// Login returns the session cookie to set for a correct password.
func (g *Gate) Login(password string) (*fiber.Cookie, error) {
	if g.password == "" {
		return nil, ErrPasswordNotConfigured
	}
	if !g.matches(password) {
		return nil, ErrInvalidPassword
	}
	return &fiber.Cookie{
		Name:     g.cookieName,
		Value:    url.QueryEscape(g.password),
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		Expires:  time.Now().Add(SessionTTL),
		HTTPOnly: true,
		Secure:   g.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}, nil
}

// LogoutCookie expires the session cookie.
func (g *Gate) LogoutCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   g.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
