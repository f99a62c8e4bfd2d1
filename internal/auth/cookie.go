package auth

import (
	"net/http"
	"time"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

// EnvProduction is the runtime environment that switches the cookie to
// cross-site mode.
const EnvProduction = "production"

// CookiePolicy decides the attributes of the session cookie.
//
// In production the front-end is served from another origin, so the cookie
// has to be Secure with SameSite=None to be sent on cross-site requests.
// Everywhere else it is SameSite=Strict and not Secure so it works over
// plain http://localhost.
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
}

// NewCookiePolicy returns the policy for the given runtime environment.
func NewCookiePolicy(environment string) CookiePolicy {
	if environment == EnvProduction {
		return CookiePolicy{Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Secure: false, SameSite: http.SameSiteStrictMode}
}

// SessionCookie wraps a signed token in a cookie that lives as long as the
// token does.
func (p CookiePolicy) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

// ClearedCookie tells the browser to drop the session cookie immediately.
// Attributes must match SessionCookie or some browsers keep the original.
func (p CookiePolicy) ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}
