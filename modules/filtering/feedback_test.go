package filtering

import (
	"testing"

	"feedback-server/common"
	"feedback-server/database/schemas"

	goaway "github.com/TwiN/go-away"
	"github.com/stretchr/testify/assert"
)

func runFilters(user *schemas.User, content string) error {
	for _, filterFunction := range Feedback {
		if err := filterFunction(user, content); err != nil {
			return err
		}
	}
	return nil
}

func TestFiltersRejectBlankContent(t *testing.T) {
	common.ProfanityDetector = nil
	user := &schemas.User{ID: "1"}

	assert.Error(t, runFilters(user, "   \t  "))
	assert.NoError(t, runFilters(user, "perfectly fine feedback"))
}

func TestProfanityFilter(t *testing.T) {
	common.ProfanityDetector = goaway.NewProfanityDetector().WithCustomDictionary([]string{"badword"}, nil, nil)
	defer func() { common.ProfanityDetector = nil }()

	user := &schemas.User{ID: "1"}
	assert.Error(t, runFilters(user, "this contains badword somewhere"))
	assert.NoError(t, runFilters(user, "this one is clean"))

	// admins bypass the word list
	admin := &schemas.User{ID: "2", IsAdmin: true}
	assert.NoError(t, runFilters(admin, "this contains badword somewhere"))
}

func TestFiltersDisabledWithoutWordList(t *testing.T) {
	common.ProfanityDetector = nil
	user := &schemas.User{ID: "1"}

	assert.NoError(t, runFilters(user, "anything goes when no list is configured"))
}
