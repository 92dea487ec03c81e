package filtering

import (
	"errors"
	"strings"

	"feedback-server/common"
	"feedback-server/database/schemas"
)

type FilterFunction func(user *schemas.User, content string) error

// Feedback filters run before any feedback content is written. Admins are
// exempt from the profanity filter, matching how word lists are curated.
var Feedback []FilterFunction

func init() {
	Feedback = []FilterFunction{

		func(user *schemas.User, content string) (err error) {
			if len(strings.TrimSpace(content)) == 0 {
				err = errors.New("Feedback cannot be empty")
			}
			return
		},

		func(user *schemas.User, content string) (err error) {
			if common.ProfanityDetector == nil || user.IsAdmin {
				return nil
			}
			if common.ProfanityDetector.IsProfane(content) {
				err = errors.New("Your feedback contains profanity")
			}
			return
		},
	}
}
