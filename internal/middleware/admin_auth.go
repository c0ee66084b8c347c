package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "admin_session"
	sessionTTL        = 30 * time.Minute
)

// AdminAuth guards the admin routes with HTTP Basic credentials. A successful
// challenge sets a short-lived signed session cookie so follow-up requests
// are not re-challenged. Missing configured credentials fail closed.
func AdminAuth(adminUser, adminPassword string) echo.MiddlewareFunc {
	// The cookie MAC key is derived from the configured password, so rotating
	// the password invalidates outstanding sessions.
	keySum := sha256.Sum256([]byte("admin-session:" + adminPassword))
	sessionKey := keySum[:]

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if adminUser == "" || adminPassword == "" {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "admin access is not configured")
			}

			if cookie, err := c.Cookie(sessionCookieName); err == nil && validSession(cookie.Value, sessionKey) {
				return next(c)
			}

			user, pass, ok := basicCredentials(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return challenge(c)
			}

			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(adminUser)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(adminPassword)) == 1
			if !userOK || !passOK {
				return challenge(c)
			}

			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    newSession(sessionKey),
				Path:     "/",
				MaxAge:   int(sessionTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
			return next(c)
		}
	}
}

func challenge(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="Secure Area"`)
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
}

func basicCredentials(header string) (string, string, bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	user, pass, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return user, pass, true
}

// newSession produces "<expiry-unix>.<mac>" where the MAC covers the expiry.
func newSession(key []byte) string {
	expiry := strconv.FormatInt(time.Now().Add(sessionTTL).Unix(), 10)
	return expiry + "." + sign(key, expiry)
}

func validSession(value string, key []byte) bool {
	expiry, mac, found := strings.Cut(value, ".")
	if !found {
		return false
	}
	if !hmac.Equal([]byte(sign(key, expiry)), []byte(mac)) {
		return false
	}
	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return false
	}
	return time.Now().Unix() < unix
}

func sign(key []byte, payload string) string {
	mac := hmac.New(sha256.New, key)
	fmt.Fprint(mac, payload)
	return hex.EncodeToString(mac.Sum(nil))
}
