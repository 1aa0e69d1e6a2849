package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/corkboard/corkboard/src/config"
	"github.com/corkboard/corkboard/src/models"
)

const SessionCookieName = "session_id"

// Expiry is fixed at creation time. There is no sliding expiry; activity
// never extends a session.
const SessionDuration = time.Hour * 24 * 7

// Returned by SessionStore.Validate when a session is absent, expired, or
// references a user that no longer exists. Callers cannot distinguish these
// cases, which is deliberate.
var ErrNoSession = errors.New("no session found")

func MakeSessionID() string {
	idBytes := make([]byte, 40)
	_, err := io.ReadFull(rand.Reader, idBytes)
	if err != nil {
		panic(err)
	}

	return base64.StdEncoding.EncodeToString(idBytes)[:40]
}

// The server-side contract for sessions. Create must never return an id
// that was not persisted; Validate must treat expired rows exactly like
// absent ones; Revoke is idempotent and reports whether a row was deleted.
type SessionStore interface {
	Create(ctx context.Context, userID int) (*models.Session, error)
	Validate(ctx context.Context, sessionID string) (*models.Identity, error)
	Revoke(ctx context.Context, sessionID string) (bool, error)
}

func NewSessionCookie(session *models.Session) *http.Cookie {
	return &http.Cookie{
		Name:  SessionCookieName,
		Value: session.ID,

		Path:   "/",
		Domain: config.Config.Auth.CookieDomain,
		MaxAge: int(SessionDuration.Seconds()),

		Secure:   config.Config.Auth.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

var DeleteSessionCookie = &http.Cookie{
	Name:   SessionCookieName,
	Path:   "/",
	Domain: config.Config.Auth.CookieDomain,
	MaxAge: -1,
}
