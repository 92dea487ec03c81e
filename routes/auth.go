package routes

import (
	"log"
	"net/http"
	"net/url"

	"feedback-server/common"
	"feedback-server/database/schemas"
	"feedback-server/modules"
	"feedback-server/modules/discord"

	"golang.org/x/exp/slices"
)

type MeResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *schemas.User `json:"user,omitempty"`
}

func baseURL(r *http.Request) string {
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = common.Ternary(r.TLS != nil, "https", "http")
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return proto + "://" + host
}

func callbackURI(r *http.Request) string {
	return baseURL(r) + "/api/auth/discord/callback"
}

func DiscordAuth(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, discord.AuthURL(callbackURI(r)), http.StatusTemporaryRedirect)
}

func DiscordCallback(w http.ResponseWriter, r *http.Request) {
	if providerError := r.URL.Query().Get("error"); providerError != "" {
		log.Println("discord oauth denied:", providerError)
		http.Redirect(w, r, "/?error="+url.QueryEscape(providerError), http.StatusTemporaryRedirect)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/?error=no_code", http.StatusTemporaryRedirect)
		return
	}

	token, err := discord.ExchangeCode(r.Context(), code, callbackURI(r))
	if err != nil {
		log.Println(err)
		http.Redirect(w, r, "/?error=auth_failed", http.StatusTemporaryRedirect)
		return
	}

	profile, err := discord.FetchUser(r.Context(), token.AccessToken)
	if err != nil {
		log.Println(err)
		http.Redirect(w, r, "/?error=auth_failed", http.StatusTemporaryRedirect)
		return
	}

	// role snapshot; a failed membership fetch degrades to "no role"
	// instead of blocking the login
	member := discord.FetchGuildMember(r.Context(), token.AccessToken, common.Config.Discord.GuildID)
	hasRole := member.HasRole(common.Config.Discord.RoleID)

	user, err := modules.UpsertUser(r.Context(), modules.UpsertUserData{
		DiscordID:     profile.ID,
		Username:      profile.DisplayName(),
		Discriminator: profile.Discriminator,
		Avatar:        profile.Avatar,
		HasClientRole: hasRole,
		IsAdmin:       slices.Contains(common.Config.AdminIDs, profile.ID),
	})
	if err != nil {
		log.Println("failed to upsert user:", err)
		http.Redirect(w, r, "/?error=auth_failed", http.StatusTemporaryRedirect)
		return
	}

	sessionToken := modules.GenerateToken()
	modules.Sessions.Set(sessionToken, user.ID)
	http.SetCookie(w, SessionCookie(sessionToken))

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(modules.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   common.Config.AppEnv == "production",
	}
}

func Me(w http.ResponseWriter, r *http.Request) {
	user, err := SessionUser(r)
	if err != nil {
		common.SendStructResponse(w, MeResponse{Authenticated: false})
		return
	}
	common.SendStructResponse(w, MeResponse{Authenticated: true, User: user})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		modules.Sessions.Destroy(cookie.Value)
	}

	expired := SessionCookie("")
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// RedirectURI tells the operator what to register in the Discord developer
// portal for this deployment.
func RedirectURI(w http.ResponseWriter, r *http.Request) {
	common.SendStructResponse(w, struct {
		RedirectURI string `json:"redirectUri"`
	}{RedirectURI: callbackURI(r)})
}
