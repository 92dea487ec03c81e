package routes

import (
	"net/http/httptest"
	"strings"
	"testing"

	"feedback-server/modules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFeedbackContentBounds(t *testing.T) {
	cases := []struct {
		length int
		valid  bool
	}{
		{9, false},
		{10, true},
		{500, true},
		{501, false},
	}

	for _, c := range cases {
		data := FeedbackRequestData{Content: strings.Repeat("a", c.length)}
		fieldErrors := validateFeedback(data)
		if c.valid {
			assert.Nil(t, fieldErrors, "content of length %d should be valid", c.length)
		} else {
			require.NotNil(t, fieldErrors, "content of length %d should be invalid", c.length)
			assert.Contains(t, fieldErrors, "content")
		}
	}
}

func TestValidateFeedbackRating(t *testing.T) {
	content := "Great service, highly recommend!"

	for _, rating := range []int{1, 3, 5} {
		r := rating
		assert.Nil(t, validateFeedback(FeedbackRequestData{Content: content, Rating: &r}))
	}

	for _, rating := range []int{0, 6} {
		r := rating
		fieldErrors := validateFeedback(FeedbackRequestData{Content: content, Rating: &r})
		require.NotNil(t, fieldErrors)
		assert.Contains(t, fieldErrors, "rating")
	}

	// rating is optional
	assert.Nil(t, validateFeedback(FeedbackRequestData{Content: content}))
}

func TestParseListOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/feedbacks", nil)

	options, err := parseListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, modules.SortByDate, options.SortBy)
	assert.Equal(t, modules.SortDesc, options.SortOrder)
	assert.Equal(t, 1, options.Page)
	assert.Equal(t, 10, options.Limit)
	assert.Nil(t, options.RatingFilter)
}

func TestParseListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/feedbacks?sortBy=rating&sortOrder=asc&page=3&limit=25&rating=4", nil)

	options, err := parseListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, modules.SortByRating, options.SortBy)
	assert.Equal(t, modules.SortAsc, options.SortOrder)
	assert.Equal(t, 3, options.Page)
	assert.Equal(t, 25, options.Limit)
	require.NotNil(t, options.RatingFilter)
	assert.Equal(t, 4, *options.RatingFilter)
}

func TestParseListOptionsInvalidValues(t *testing.T) {
	// bogus sort and paging values fall back to defaults
	r := httptest.NewRequest("GET", "/api/feedbacks?sortBy=bogus&sortOrder=sideways&page=-1&limit=0", nil)

	options, err := parseListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, modules.SortByDate, options.SortBy)
	assert.Equal(t, modules.SortDesc, options.SortOrder)
	assert.Equal(t, 1, options.Page)
	assert.Equal(t, 10, options.Limit)

	for _, param := range []string{"0", "6", "abc"} {
		r := httptest.NewRequest("GET", "/api/feedbacks?rating="+param, nil)
		_, err := parseListOptions(r)
		assert.ErrorIs(t, err, errInvalidRating)
	}
}

func TestWriteEndpointsRequireSession(t *testing.T) {
	modules.InitSessions()

	w := httptest.NewRecorder()
	AddFeedback(w, httptest.NewRequest("POST", "/api/feedbacks", strings.NewReader(`{}`)))
	assert.Equal(t, 401, w.Code)

	w = httptest.NewRecorder()
	UpdateFeedback(w, httptest.NewRequest("PATCH", "/api/feedbacks/some-id", strings.NewReader(`{}`)))
	assert.Equal(t, 401, w.Code)

	w = httptest.NewRecorder()
	DeleteFeedback(w, httptest.NewRequest("DELETE", "/api/feedbacks/some-id", nil))
	assert.Equal(t, 401, w.Code)
}
