package website

import (
	"errors"
	"net/http"
	"strings"

	"github.com/corkboard/corkboard/src/auth"
)

func (s *websiteRoutes) Login(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return c.RejectRequest("You are already logged in.")
	}

	form, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	username := form.Get("username")
	password := form.Get("password")

	session, err := s.auth.Login(c, username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return c.RejectRequest("You must provide both a username and password.")
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
			// One message for both outcomes so responses can't be used to
			// probe which usernames exist.
			return c.ErrorResponse(http.StatusUnauthorized, NewSafeError(err, "Incorrect username or password"))
		default:
			return c.ErrorResponse(http.StatusInternalServerError, err)
		}
	}

	res := c.Redirect("/main", http.StatusSeeOther)
	res.SetCookie(auth.NewSessionCookie(session))
	return res
}

func (s *websiteRoutes) Logout(c *RequestContext) ResponseData {
	sessionCookie, err := c.Req.Cookie(auth.SessionCookieName)
	if err == nil {
		// clear the session from the db immediately, no expiration
		s.auth.Logout(c, sessionCookie.Value)
	}

	res := c.Redirect("/", http.StatusSeeOther)
	res.SetCookie(auth.DeleteSessionCookie)

	return res
}

func (s *websiteRoutes) Register(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return c.RejectRequest("Can't register a new user. You are already logged in.")
	}

	form, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	username := strings.TrimSpace(form.Get("username"))
	password := form.Get("password")

	_, err = s.auth.Register(c, username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return c.RejectRequest("You must provide both a username and password.")
		case errors.Is(err, auth.ErrUsernameTaken):
			return c.ErrorResponse(http.StatusConflict, NewSafeError(err, "Username already taken"))
		default:
			return c.ErrorResponse(http.StatusInternalServerError, err)
		}
	}

	// No auto-login; the new user signs in from the landing page.
	return c.Redirect("/", http.StatusSeeOther)
}
