package routes

import (
	"errors"
	"net/http"

	"feedback-server/database/schemas"
	"feedback-server/modules"
)

const SessionCookieName = "session"

var ErrNoSession = errors.New("no active session")

// SessionUser resolves the session cookie to its user row. ErrNoSession
// covers a missing cookie, an expired session and a session whose user row
// disappeared; handlers map it to 401.
func SessionUser(r *http.Request) (*schemas.User, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	userID, ok := modules.Sessions.Get(cookie.Value)
	if !ok {
		return nil, ErrNoSession
	}

	user, err := modules.GetUser(r.Context(), userID)
	if errors.Is(err, modules.ErrUserNotFound) {
		modules.Sessions.Destroy(cookie.Value)
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
