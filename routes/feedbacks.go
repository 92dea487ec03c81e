package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"feedback-server/common"
	"feedback-server/modules"
	"feedback-server/modules/discord"
	"feedback-server/modules/filtering"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type FeedbackRequestData struct {
	Content string `json:"content" validate:"required,min=10,max=500"`
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

func validateFeedback(data FeedbackRequestData) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	fieldErrors := map[string]string{}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["body"] = "invalid payload"
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		switch fieldError.Field() {
		case "Content":
			fieldErrors["content"] = "content must be between 10 and 500 characters"
		case "Rating":
			fieldErrors["rating"] = "rating must be between 1 and 5"
		}
	}
	return fieldErrors
}

var errInvalidRating = errors.New("rating must be between 1 and 5")

// parseListOptions tolerates bad sort and paging values by falling back to
// defaults; only an out-of-range rating filter is a hard error.
func parseListOptions(r *http.Request) (modules.ListFeedbacksOptions, error) {
	options := modules.ListFeedbacksOptions{
		SortBy:    modules.SortByDate,
		SortOrder: modules.SortDesc,
		Page:      1,
		Limit:     10,
	}

	if r.URL.Query().Get("sortBy") == "rating" {
		options.SortBy = modules.SortByRating
	}
	if r.URL.Query().Get("sortOrder") == "asc" {
		options.SortOrder = modules.SortAsc
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page >= 1 {
		options.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit >= 1 {
		options.Limit = limit
	}

	if ratingParam := r.URL.Query().Get("rating"); ratingParam != "" {
		rating, err := strconv.Atoi(ratingParam)
		if err != nil || rating < 1 || rating > 5 {
			return options, errInvalidRating
		}
		options.RatingFilter = &rating
	}

	return options, nil
}

func GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	options, err := parseListOptions(r)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := modules.ListFeedbacks(r.Context(), options)
	if err != nil {
		ServerError(w, err)
		return
	}
	common.SendStructResponse(w, page)
}

func GetFeedbackStats(w http.ResponseWriter, r *http.Request) {
	stats, err := modules.ComputeStats(r.Context())
	if err != nil {
		ServerError(w, err)
		return
	}
	common.SendStructResponse(w, stats)
}

func AddFeedback(w http.ResponseWriter, r *http.Request) {
	user, err := SessionUser(r)
	if errors.Is(err, ErrNoSession) {
		Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		ServerError(w, err)
		return
	}

	if !user.HasClientRole {
		Error(w, http.StatusForbidden, "Forbidden - requires the client role")
		return
	}

	var data FeedbackRequestData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fieldErrors := validateFeedback(data); fieldErrors != nil {
		ValidationError(w, fieldErrors)
		return
	}

	for _, filterFunction := range filtering.Feedback {
		if err := filterFunction(user, data.Content); err != nil {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	feedback, err := modules.CreateFeedback(r.Context(), user.ID, data.Content, data.Rating)
	if err != nil {
		ServerError(w, err)
		return
	}

	go discord.NotifyNewFeedback(user, feedback)

	w.WriteHeader(http.StatusCreated)
	common.SendStructResponse(w, feedback)
}

func UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	user, err := SessionUser(r)
	if errors.Is(err, ErrNoSession) {
		Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		ServerError(w, err)
		return
	}

	id := chi.URLParam(r, "id")

	// existence before ownership, so a missing id never turns into a 403
	feedback, err := modules.GetFeedback(r.Context(), id)
	if errors.Is(err, modules.ErrFeedbackNotFound) {
		Error(w, http.StatusNotFound, "Feedback not found")
		return
	}
	if err != nil {
		ServerError(w, err)
		return
	}

	if feedback.UserID != user.ID && !user.IsAdmin {
		Error(w, http.StatusForbidden, "Cannot edit other users' feedback")
		return
	}

	var data FeedbackRequestData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fieldErrors := validateFeedback(data); fieldErrors != nil {
		ValidationError(w, fieldErrors)
		return
	}

	for _, filterFunction := range filtering.Feedback {
		if err := filterFunction(user, data.Content); err != nil {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	updated, err := modules.UpdateFeedback(r.Context(), id, data.Content, data.Rating)
	if errors.Is(err, modules.ErrFeedbackNotFound) {
		Error(w, http.StatusNotFound, "Feedback not found")
		return
	}
	if err != nil {
		ServerError(w, err)
		return
	}

	common.SendStructResponse(w, updated)
}

func DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	user, err := SessionUser(r)
	if errors.Is(err, ErrNoSession) {
		Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		ServerError(w, err)
		return
	}

	id := chi.URLParam(r, "id")

	feedback, err := modules.GetFeedback(r.Context(), id)
	if errors.Is(err, modules.ErrFeedbackNotFound) {
		Error(w, http.StatusNotFound, "Feedback not found")
		return
	}
	if err != nil {
		ServerError(w, err)
		return
	}

	if feedback.UserID != user.ID && !user.IsAdmin {
		Error(w, http.StatusForbidden, "Cannot delete other users' feedback")
		return
	}

	if _, err := modules.DeleteFeedback(r.Context(), id); err != nil {
		ServerError(w, err)
		return
	}

	common.SendStructResponse(w, struct {
		Success bool `json:"success"`
	}{Success: true})
}
