package discord

import (
	"log"
	"strings"

	"feedback-server/common"
	"feedback-server/database/schemas"

	"github.com/diamondburned/arikawa/v3/api/webhook"
	"github.com/diamondburned/arikawa/v3/discord"
)

// NotifyNewFeedback posts a new submission to the configured Discord
// webhook. Best effort: failures are logged and never surfaced to the
// submitting user.
func NotifyNewFeedback(user *schemas.User, feedback *schemas.Feedback) {
	if common.Config.FeedbackWebhook == "" {
		return
	}

	client, err := webhook.NewFromURL(common.Config.FeedbackWebhook)
	if err != nil {
		log.Println("invalid feedback webhook url:", err)
		return
	}

	embed := discord.Embed{
		Title:       "New feedback",
		Description: feedback.Content,
		Fields: []discord.EmbedField{
			{
				Name:  "User",
				Value: user.Username,
			},
			{
				Name:  "Rating",
				Value: RatingStars(feedback.Rating),
			},
		},
	}

	err = client.Execute(webhook.ExecuteData{
		Embeds: []discord.Embed{embed},
	})
	if err != nil {
		log.Println("failed to execute feedback webhook:", err)
	}
}

func RatingStars(rating *int) string {
	if rating == nil {
		return "unrated"
	}
	return strings.Repeat("⭐", *rating)
}
