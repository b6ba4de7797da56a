// Package auth guards the catalog's write surface.
//
// It supports two modes:
//   - "none": every request is allowed (default)
//   - "basic": POST and other unsafe methods need the admin account via
//     HTTP basic auth; reads stay public
//
// # Configuration
//
//	AUTH_MODE=basic
//	AUTH_ADMIN_USERNAME=admin
//	AUTH_ADMIN_PASSWORD_HASH=<bcrypt>     # see `mediateca hash-password`
//	AUTH_SESSION_SECRET=<hex-32-bytes>    # CSRF key, auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h
//	AUTH_SECURE_COOKIES=true
//
// The package also carries the browser-facing middleware: CSRF protection
// for HTML forms, security headers, scs-backed sessions for flash messages,
// and a per-IP write rate limiter.
//
// # Usage
//
//	limiter := auth.NewRateLimiter(auth.DefaultRateLimitConfig())
//	defer limiter.Stop()
//	router.Use(auth.SecurityHeadersMiddleware(), limiter.RateLimitMiddleware())
//	router.Use(auth.AdminGuard(cfg.Auth))
package auth
