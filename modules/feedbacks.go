package modules

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"feedback-server/database"
	"feedback-server/database/schemas"

	"github.com/google/uuid"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type SortBy int

const (
	SortByDate SortBy = iota
	SortByRating
)

type SortOrder int

const (
	SortDesc SortOrder = iota
	SortAsc
)

// column maps the closed sort enum to an actual column so query ordering
// never takes a caller-supplied string.
func (s SortBy) column() string {
	if s == SortByRating {
		return "feedback.rating"
	}
	return "feedback.created_at"
}

func (o SortOrder) direction() string {
	if o == SortAsc {
		return "ASC"
	}
	return "DESC"
}

type ListFeedbacksOptions struct {
	SortBy       SortBy
	SortOrder    SortOrder
	RatingFilter *int
	Page         int
	Limit        int
}

type FeedbackPage struct {
	Feedbacks  []schemas.Feedback `json:"feedbacks"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// ListFeedbacks returns one page of feedback joined with its authors. The
// count and the page rows come from the same query, so the rating filter
// and the missing-user guard always apply to both.
func ListFeedbacks(ctx context.Context, options ListFeedbacksOptions) (*FeedbackPage, error) {
	if options.Page < 1 {
		options.Page = 1
	}
	if options.Limit < 1 {
		options.Limit = 10
	}

	feedbacks := []schemas.Feedback{}

	query := database.DB.NewSelect().
		Model(&feedbacks).
		Relation("User").
		Where(`"user".id IS NOT NULL`)

	if options.RatingFilter != nil {
		query = query.Where("feedback.rating = ?", *options.RatingFilter)
	}

	order := options.SortBy.column() + " " + options.SortOrder.direction()
	if options.SortBy == SortByRating {
		// unrated entries always sort after rated ones
		order += " NULLS LAST"
	}

	total, err := query.
		OrderExpr(order).
		Limit(options.Limit).
		Offset((options.Page - 1) * options.Limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &FeedbackPage{
		Feedbacks:  feedbacks,
		Total:      total,
		Page:       options.Page,
		TotalPages: pageCount(total, options.Limit),
	}, nil
}

func pageCount(total, limit int) int {
	return (total + limit - 1) / limit
}

// ComputeStats aggregates all feedback rows: total count, one-decimal
// average of the rated ones and a histogram of rating values that occur.
func ComputeStats(ctx context.Context) (*schemas.FeedbackStats, error) {
	stats := &schemas.FeedbackStats{
		RatingDistribution: []schemas.RatingCount{},
	}

	total, err := database.DB.NewSelect().Model((*schemas.Feedback)(nil)).Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalCount = total

	var average sql.NullFloat64
	err = database.DB.NewSelect().
		Model((*schemas.Feedback)(nil)).
		ColumnExpr("AVG(rating)").
		Where("rating IS NOT NULL").
		Scan(ctx, &average)
	if err != nil {
		return nil, err
	}
	if average.Valid {
		rounded := roundRating(average.Float64)
		stats.AverageRating = &rounded
	}

	err = database.DB.NewSelect().
		Model((*schemas.Feedback)(nil)).
		ColumnExpr("rating, COUNT(*) AS count").
		Where("rating IS NOT NULL").
		GroupExpr("rating").
		OrderExpr("rating ASC").
		Scan(ctx, &stats.RatingDistribution)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}

func GetFeedback(ctx context.Context, id string) (*schemas.Feedback, error) {
	feedback := &schemas.Feedback{}
	err := database.DB.NewSelect().
		Model(feedback).
		Relation("User").
		Where("feedback.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func CreateFeedback(ctx context.Context, userID, content string, rating *int) (*schemas.Feedback, error) {
	feedback := &schemas.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := database.DB.NewInsert().Model(feedback).Exec(ctx); err != nil {
		return nil, err
	}
	return feedback, nil
}

func UpdateFeedback(ctx context.Context, id, content string, rating *int) (*schemas.Feedback, error) {
	now := time.Now().UTC()

	res, err := database.DB.NewUpdate().
		Model((*schemas.Feedback)(nil)).
		Set("content = ?", content).
		Set("rating = ?", rating).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrFeedbackNotFound
	}

	return GetFeedback(ctx, id)
}

// DeleteFeedback reports whether a row was actually removed. Deleting an
// absent id is not an error here; the route layer decides whether that is
// a 404.
func DeleteFeedback(ctx context.Context, id string) (bool, error) {
	res, err := database.DB.NewDelete().
		Model((*schemas.Feedback)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected != 0, nil
}

func GetFeedbackCount() (int, error) {
	return database.DB.NewSelect().Model((*schemas.Feedback)(nil)).Count(context.Background())
}
