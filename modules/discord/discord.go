package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"feedback-server/common"

	"golang.org/x/exp/slices"
	"golang.org/x/oauth2"
)

var (
	ErrExchangeFailed  = errors.New("discord code exchange failed")
	ErrUserFetchFailed = errors.New("discord user fetch failed")
)

type User struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`
	GlobalName    string  `json:"global_name"`
}

// DisplayName prefers the newer global name over the legacy
// username#discriminator identity.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

type GuildMember struct {
	Nick   string   `json:"nick"`
	Avatar string   `json:"avatar"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the member holds the given role. A nil member
// means "not in the guild" and never has the role.
func (m *GuildMember) HasRole(roleID string) bool {
	if m == nil {
		return false
	}
	return slices.Contains(m.Roles, roleID)
}

func oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			AuthURL:   common.Config.Discord.ApiEndpoint + "/oauth2/authorize",
			TokenURL:  common.Config.Discord.ApiEndpoint + "/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes:       []string{"identify", "guilds.members.read"},
		RedirectURL:  redirectURI,
		ClientID:     common.Config.Discord.ClientID,
		ClientSecret: common.Config.Discord.ClientSecret,
	}
}

func AuthURL(redirectURI string) string {
	return oauthConfig(redirectURI).AuthCodeURL("")
}

func ExchangeCode(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	token, err := oauthConfig(redirectURI).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExchangeFailed, err)
	}
	return token, nil
}

func FetchUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, common.Config.Discord.ApiEndpoint+"/users/@me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrUserFetchFailed, resp.StatusCode, body)
	}

	user := &User{}
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserFetchFailed, err)
	}
	return user, nil
}

// FetchGuildMember returns nil without an error both when the user is not
// a member (404) and when membership could not be determined. Login never
// fails on this call; the caller just ends up without the role.
func FetchGuildMember(ctx context.Context, accessToken, guildID string) *GuildMember {
	url := common.Config.Discord.ApiEndpoint + "/users/@me/guilds/" + guildID + "/member"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Println("failed to fetch guild member:", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("failed to fetch guild member: status %d: %s", resp.StatusCode, body)
		return nil
	}

	member := &GuildMember{}
	if err := json.NewDecoder(resp.Body).Decode(member); err != nil {
		log.Println("failed to decode guild member:", err)
		return nil
	}
	return member
}

func AvatarURL(userID string, avatar *string) string {
	if avatar == nil || *avatar == "" {
		return ""
	}
	ext := common.Ternary(strings.HasPrefix(*avatar, "a_"), "gif", "png")
	return fmt.Sprintf("%s/avatars/%s/%s.%s", common.Config.Discord.CdnEndpoint, userID, *avatar, ext)
}
