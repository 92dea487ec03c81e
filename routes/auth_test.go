package routes

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"feedback-server/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(appEnv string) {
	common.Config = &common.ConfigStr{
		AppEnv: appEnv,
		Discord: &common.DiscordClient{
			ClientID:    "client-id",
			ApiEndpoint: "https://discord.com/api/v10",
			GuildID:     "guild-1",
			RoleID:      "role-1",
		},
	}
}

func TestBaseURL(t *testing.T) {
	r := httptest.NewRequest("GET", "http://localhost:8080/api/auth/discord", nil)
	testConfig("development")
	assert.Equal(t, "http://localhost:8080", baseURL(r))

	r.Header.Set("X-Forwarded-Proto", "https")
	r.Header.Set("X-Forwarded-Host", "feedback.example.com")
	assert.Equal(t, "https://feedback.example.com", baseURL(r))

	assert.Equal(t, "https://feedback.example.com/api/auth/discord/callback", callbackURI(r))
}

func TestSessionCookie(t *testing.T) {
	testConfig("development")
	cookie := SessionCookie("fdb.token")

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "fdb.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.False(t, cookie.Secure)

	testConfig("production")
	assert.True(t, SessionCookie("fdb.token").Secure)
}

func TestMeWithoutSession(t *testing.T) {
	testConfig("development")

	w := httptest.NewRecorder()
	Me(w, httptest.NewRequest("GET", "/api/auth/me", nil))

	require.Equal(t, 200, w.Code)

	var response MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Authenticated)
	assert.Nil(t, response.User)
}

func TestDiscordAuthRedirect(t *testing.T) {
	testConfig("development")

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://localhost:8080/api/auth/discord", nil)
	DiscordAuth(w, r)

	require.Equal(t, 307, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "https://discord.com/api/v10/oauth2/authorize")
	assert.Contains(t, location, "client_id=client-id")
}

func TestDiscordCallbackReasonCodes(t *testing.T) {
	testConfig("development")

	w := httptest.NewRecorder()
	DiscordCallback(w, httptest.NewRequest("GET", "/api/auth/discord/callback?error=access_denied", nil))
	require.Equal(t, 307, w.Code)
	assert.Equal(t, "/?error=access_denied", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	DiscordCallback(w, httptest.NewRequest("GET", "/api/auth/discord/callback", nil))
	require.Equal(t, 307, w.Code)
	assert.Equal(t, "/?error=no_code", w.Header().Get("Location"))
}
