package website

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/oops"
)

func panicCatcherMiddleware(h Handler) Handler {
	return func(c *RequestContext) (res ResponseData) {
		defer func() {
			if recovered := recover(); recovered != nil {
				maybeError, ok := recovered.(*error)
				var err error
				if ok {
					err = *maybeError
				} else {
					err = oops.New(nil, fmt.Sprintf("Recovered from panic with value: %v", recovered))
				}
				res = c.ErrorResponse(http.StatusInternalServerError, err)
			}
		}()

		return h(c)
	}
}

func trackRequestsMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		start := time.Now()
		res := h(c)

		status := res.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		c.Logger.Info().
			Str("method", c.Req.Method).
			Str("path", c.Req.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg(fmt.Sprintf("Served [%s] %s", c.Req.Method, c.Req.URL.Path))

		return res
	}
}

// Resolves the session cookie into an identity, exactly once per request,
// before any handler logic runs. An absent, expired, or malformed token
// just means an anonymous request; plenty of routes are legitimately
// public, so they are never rejected here. Handlers gate access themselves.
func identityMiddleware(sessions auth.SessionStore) Middleware {
	return func(h Handler) Handler {
		return func(c *RequestContext) ResponseData {
			sessionCookie, err := c.Req.Cookie(auth.SessionCookieName)
			// http.ErrNoCookie is the only error Cookie ever returns.
			if err == nil && sessionCookie.Value != "" {
				identity, err := sessions.Validate(c, sessionCookie.Value)
				if err == nil {
					c.CurrentUser = identity
					c.CurrentSessionID = sessionCookie.Value
				} else if !errors.Is(err, auth.ErrNoSession) {
					return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to resolve session"))
				}
			}

			return h(c)
		}
	}
}

// For API routes: anonymous requests get a 401.
func needsAuth(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.CurrentUser == nil {
			return c.ErrorResponse(http.StatusUnauthorized, NewSafeError(nil, "Unauthorized"))
		}

		return h(c)
	}
}

// For pages: anonymous requests get bounced to the login page.
func needsAuthPage(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.CurrentUser == nil {
			return c.Redirect("/", http.StatusSeeOther)
		}

		return h(c)
	}
}

func logContextErrors(c *RequestContext, errs ...error) {
	for _, err := range errs {
		c.Logger.Error().Timestamp().Stack().Str("Requested", c.FullUrl()).Err(err).Msg("error occurred during request")
	}
}

func logContextErrorsMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		res := h(c)
		logContextErrors(c, res.Errors...)
		return res
	}
}
