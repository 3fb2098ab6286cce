// Package session keeps the small amount of per-visitor state the HTML
// frontend needs (one-time flash messages and the CSRF nonce) in cookies
// signed with the application secret key.
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// FlashCookie holds the pending flash messages
	FlashCookie = "pizza_flash"
	// CSRFCookie holds the signed CSRF nonce
	CSRFCookie = "pizza_csrf"

	// CSRFTokenLifetime bounds how long a rendered form stays submittable
	CSRFTokenLifetime = time.Hour

	flashLifetime = 5 * time.Minute
	csrfCtxKey    = "session.csrf_nonce"
)

// Flash categories understood by the templates
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

// Flash is a message meant to be displayed exactly once
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

type csrfClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// Store signs and verifies session cookies
type Store struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// NewStore creates a cookie store signing with secret
func NewStore(secret string, secure bool) *Store {
	return &Store{secret: []byte(secret), secure: secure, now: time.Now}
}

// AddFlash queues a flash message for the next rendered page
func (s *Store) AddFlash(c *gin.Context, category, message string) error {
	flashes := append(s.readFlashes(c), Flash{Category: category, Message: message})
	claims := flashClaims{
		Flashes: flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(flashLifetime)),
		},
	}
	token, err := s.sign(claims)
	if err != nil {
		return fmt.Errorf("sign flash cookie: %w", err)
	}
	// Later reads within the same request must see the queued messages
	c.Request.AddCookie(&http.Cookie{Name: FlashCookie, Value: token})
	s.setCookie(c, FlashCookie, token, int(flashLifetime.Seconds()))
	return nil
}

// PopFlashes returns the queued flash messages and clears them
func (s *Store) PopFlashes(c *gin.Context) []Flash {
	flashes := s.readFlashes(c)
	if _, err := c.Cookie(FlashCookie); err == nil {
		s.setCookie(c, FlashCookie, "", -1)
	}
	return flashes
}

func (s *Store) readFlashes(c *gin.Context) []Flash {
	raw := lastCookie(c.Request, FlashCookie)
	if raw == "" {
		return nil
	}
	var claims flashClaims
	if err := s.parse(raw, &claims); err != nil {
		return nil
	}
	return claims.Flashes
}

// CSRFToken returns the visitor's CSRF nonce, issuing a fresh signed cookie
// when there is no valid one yet.
func (s *Store) CSRFToken(c *gin.Context) (string, error) {
	if nonce := c.GetString(csrfCtxKey); nonce != "" {
		return nonce, nil
	}
	if nonce, err := s.cookieNonce(c); err == nil {
		c.Set(csrfCtxKey, nonce)
		return nonce, nil
	}

	nonce := uuid.NewString()
	claims := csrfClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(CSRFTokenLifetime)),
		},
	}
	token, err := s.sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign csrf cookie: %w", err)
	}
	s.setCookie(c, CSRFCookie, token, int(CSRFTokenLifetime.Seconds()))
	c.Set(csrfCtxKey, nonce)
	return nonce, nil
}

// VerifyCSRF checks a submitted token against the signed cookie
func (s *Store) VerifyCSRF(c *gin.Context, submitted string) bool {
	if submitted == "" {
		return false
	}
	nonce, err := s.cookieNonce(c)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(nonce), []byte(submitted)) == 1
}

func (s *Store) cookieNonce(c *gin.Context) (string, error) {
	raw, err := c.Cookie(CSRFCookie)
	if err != nil || raw == "" {
		return "", errors.New("csrf cookie missing")
	}
	var claims csrfClaims
	if err := s.parse(raw, &claims); err != nil {
		return "", err
	}
	if claims.Nonce == "" {
		return "", errors.New("csrf cookie has no nonce")
	}
	return claims.Nonce, nil
}

func (s *Store) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Store) parse(raw string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	return err
}

func (s *Store) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", s.secure, true)
}

// lastCookie returns the most recently added cookie with the given name
func lastCookie(r *http.Request, name string) string {
	value := ""
	for _, cookie := range r.Cookies() {
		if cookie.Name == name {
			value = cookie.Value
		}
	}
	return value
}
