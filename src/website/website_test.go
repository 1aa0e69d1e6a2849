package website

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/data"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSite() http.Handler {
	users := data.NewMemoryCredentialStore()
	sessions := data.NewMemorySessionStore(users)
	return newRoutes(&websiteRoutes{
		auth:  auth.NewService(users, sessions),
		notes: data.NewMemoryNoteStore(),
		pins:  data.NewMemoryPinStore(),
	})
}

func postForm(t *testing.T, site http.Handler, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	site.ServeHTTP(rec, req)
	return rec.Result()
}

func readJson(res *http.Response, v any) error {
	defer res.Body.Close()
	return json.NewDecoder(res.Body).Decode(v)
}

func credentials(username string) url.Values {
	return url.Values{
		"username": {username},
		"password": {"password123"},
	}
}

// Registers the user and logs them in, returning the session cookie.
func loginAs(t *testing.T, site http.Handler, username string) *http.Cookie {
	t.Helper()

	res := postForm(t, site, "/register", credentials(username))
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	res = postForm(t, site, "/login", credentials(username))
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	for _, cookie := range res.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	site := newTestSite()

	t.Run("register redirects to the landing page without a cookie", func(t *testing.T) {
		res := postForm(t, site, "/register", credentials("alice"))
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))
		assert.Empty(t, res.Cookies())
	})

	t.Run("login sets the session cookie and redirects to main", func(t *testing.T) {
		res := postForm(t, site, "/login", credentials("alice"))
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/main", res.Header.Get("Location"))

		cookies := res.Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, auth.SessionCookieName, cookie.Name)
		assert.Len(t, cookie.Value, 40)
		assert.Equal(t, "/", cookie.Path)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, int(auth.SessionDuration.Seconds()), cookie.MaxAge)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		badPassword := postForm(t, site, "/login", url.Values{
			"username": {"alice"},
			"password": {"wrong"},
		})
		noSuchUser := postForm(t, site, "/login", credentials("mallory"))

		assert.Equal(t, http.StatusUnauthorized, badPassword.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, noSuchUser.StatusCode)

		var bodyA, bodyB map[string]string
		require.Nil(t, readJson(badPassword, &bodyA))
		require.Nil(t, readJson(noSuchUser, &bodyB))
		assert.Equal(t, bodyA, bodyB)
	})

	t.Run("missing credentials are a bad request", func(t *testing.T) {
		res := postForm(t, site, "/login", url.Values{"username": {"alice"}})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		res := postForm(t, site, "/register", credentials("ALICE"))
		assert.Equal(t, http.StatusConflict, res.StatusCode)
	})
}

func TestLogoutFlow(t *testing.T) {
	site := newTestSite()
	cookie := loginAs(t, site, "alice")

	res := postForm(t, site, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)

	t.Run("clears the cookie and kills the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		site.ServeHTTP(rec, req)
		res := rec.Result()

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))
		cookies := res.Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)

		// The revoked session no longer grants access.
		apitest.New().
			Handler(site).
			Get("/api/notes").
			Cookie(cookie.Name, cookie.Value).
			Expect(t).
			Status(http.StatusUnauthorized).
			End()
	})
}

func TestIdentity(t *testing.T) {
	site := newTestSite()

	t.Run("anonymous landing page", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Get("/").
			Expect(t).
			Status(http.StatusOK).
			Body(`{"user": null}`).
			End()
	})

	t.Run("anonymous main page bounces to landing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/main", nil)
		rec := httptest.NewRecorder()
		site.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("garbage cookie is just anonymous", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Get("/").
			Cookie(auth.SessionCookieName, "notarealsession").
			Expect(t).
			Status(http.StatusOK).
			Body(`{"user": null}`).
			End()
	})

	t.Run("logged in main page shows the user", func(t *testing.T) {
		cookie := loginAs(t, site, "bob")
		req := httptest.NewRequest(http.MethodGet, "/main", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		site.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"bob"`)
	})
}

func TestNotesApi(t *testing.T) {
	site := newTestSite()
	alice := loginAs(t, site, "alice")
	bob := loginAs(t, site, "bob")

	t.Run("anonymous requests are unauthorized", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Get("/api/notes").
			Expect(t).
			Status(http.StatusUnauthorized).
			End()
	})

	t.Run("starts empty", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Get("/api/notes").
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			Body(`[]`).
			End()
	})

	var noteID string
	t.Run("create", func(t *testing.T) {
		result := apitest.New().
			Handler(site).
			Post("/api/notes").
			FormData("title", "groceries").
			FormData("content", "eggs, flour").
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusCreated).
			End()

		var note struct {
			ID string `json:"id"`
		}
		require.Nil(t, readJson(result.Response, &note))
		require.NotEmpty(t, note.ID)
		noteID = note.ID
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Post("/api/notes").
			FormData("title", "no content").
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusBadRequest).
			End()
	})

	t.Run("owner can fetch and update", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Get("/api/notes/"+noteID).
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			End()

		apitest.New().
			Handler(site).
			Post("/api/notes/"+noteID).
			FormData("title", "groceries").
			FormData("content", "eggs, flour, sugar").
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			End()
	})

	t.Run("foreign notes read as missing", func(t *testing.T) {
		// Bob gets a 404, not a 403; the response must not leak that the
		// note exists at all.
		apitest.New().
			Handler(site).
			Get("/api/notes/"+noteID).
			Cookie(bob.Name, bob.Value).
			Expect(t).
			Status(http.StatusNotFound).
			End()

		apitest.New().
			Handler(site).
			Delete("/api/notes/"+noteID).
			Cookie(bob.Name, bob.Value).
			Expect(t).
			Status(http.StatusNotFound).
			End()

		// Alice still sees her note.
		apitest.New().
			Handler(site).
			Get("/api/notes/"+noteID).
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			End()
	})

	t.Run("owner can delete", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Delete("/api/notes/"+noteID).
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			End()

		apitest.New().
			Handler(site).
			Get("/api/notes/"+noteID).
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusNotFound).
			End()
	})
}

func TestPinsApi(t *testing.T) {
	site := newTestSite()
	alice := loginAs(t, site, "alice")
	bob := loginAs(t, site, "bob")

	t.Run("default board is an empty array", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Get("/api/pins").
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			Body(`[]`).
			End()
	})

	t.Run("save round-trips", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Put("/api/pins").
			Body(`[{"x":10,"y":20,"label":"todo"}]`).
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			End()

		apitest.New().
			Handler(site).
			Get("/api/pins").
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusOK).
			Body(`[{"x":10,"y":20,"label":"todo"}]`).
			End()
	})

	t.Run("non-array payloads are rejected", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Put("/api/pins").
			Body(`{"x":10}`).
			Cookie(alice.Name, alice.Value).
			Expect(t).
			Status(http.StatusBadRequest).
			End()
	})

	t.Run("boards are per user", func(t *testing.T) {
		apitest.New().
			Handler(site).
			Get("/api/pins").
			Cookie(bob.Name, bob.Value).
			Expect(t).
			Status(http.StatusOK).
			Body(`[]`).
			End()
	})
}
