package services

import (
	"context"
	"fmt"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/validate"
)

// ReviewService appends reviews. Aggregation is the profile view's job.
type ReviewService struct {
	store store.Store
}

func NewReviewService(s store.Store) *ReviewService { return &ReviewService{store: s} }

// Create records a review by the acting user. The reviewer name is
// denormalized onto the record so profile rendering needs no join.
func (s *ReviewService) Create(ctx context.Context, reviewerID, reviewerName, reviewedUserID string, rating int, comment string) (*model.Review, error) {
	if reviewerID == "" {
		return nil, fmt.Errorf("review requires an acting user: %w", model.ErrUnauthorized)
	}
	if err := validate.CreateReview(reviewedUserID, rating, comment); err != nil {
		return nil, err
	}
	return s.store.Reviews().Create(ctx, &model.Review{
		ReviewerID:     reviewerID,
		ReviewerName:   reviewerName,
		ReviewedUserID: reviewedUserID,
		Rating:         rating,
		Comment:        comment,
	})
}
