package common

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/joho/godotenv"
)

type DiscordClient struct {
	ClientID     string
	ClientSecret string
	ApiEndpoint  string
	CdnEndpoint  string
	GuildID      string
	RoleID       string
}

type ConfigDB struct {
	Addr     string
	User     string
	Password string
	Name     string
}

type ConfigStr struct {
	DB              *ConfigDB
	Discord         *DiscordClient
	Port            string
	AppEnv          string
	Debug           bool
	AdminIDs        []string
	FeedbackWebhook string
	SentryDSN       string
	ProfaneWordList []string
}

var Config *ConfigStr

// ProfanityDetector is nil when no word list is configured, which disables
// the content filter entirely.
var ProfanityDetector *goaway.ProfanityDetector

// LoadConfig reads configuration from the environment. A .env file is
// loaded first if present so local development doesn't need exported vars.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	debug, _ := strconv.ParseBool(getEnv("DEBUG", "false"))

	Config = &ConfigStr{
		DB: &ConfigDB{
			Addr:     getEnv("DB_ADDR", "localhost:5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "feedbackdb"),
		},
		Discord: &DiscordClient{
			ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
			ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
			ApiEndpoint:  getEnv("DISCORD_API_ENDPOINT", "https://discord.com/api/v10"),
			CdnEndpoint:  getEnv("DISCORD_CDN_ENDPOINT", "https://cdn.discordapp.com"),
			GuildID:      getEnv("DISCORD_GUILD_ID", ""),
			RoleID:       getEnv("DISCORD_ROLE_ID", ""),
		},
		Port:            getEnv("PORT", "8080"),
		AppEnv:          getEnv("APP_ENV", "development"),
		Debug:           debug,
		AdminIDs:        splitList(getEnv("ADMIN_IDS", "")),
		FeedbackWebhook: getEnv("FEEDBACK_WEBHOOK", ""),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
		ProfaneWordList: splitList(getEnv("PROFANE_WORD_LIST", "")),
	}

	if Config.Discord.ClientID == "" || Config.Discord.ClientSecret == "" {
		return fmt.Errorf("DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET are required")
	}
	if Config.Discord.GuildID == "" {
		return fmt.Errorf("DISCORD_GUILD_ID is required")
	}
	if Config.Discord.RoleID == "" {
		return fmt.Errorf("DISCORD_ROLE_ID is required")
	}

	if len(Config.ProfaneWordList) != 0 {
		ProfanityDetector = goaway.NewProfanityDetector().WithCustomDictionary(Config.ProfaneWordList, nil, nil)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
