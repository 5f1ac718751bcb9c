package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/validate"
)

// ProfileService produces the derived reputation/listing read-model. It owns
// no data; it composes snapshots from the user, review, and item stores.
// Reputation is advisory, so reads never hard-fail: any problem degrades to a
// default profile shell.
type ProfileService struct {
	store store.Store
	log   zerolog.Logger
}

func NewProfileService(s store.Store, log zerolog.Logger) *ProfileService {
	return &ProfileService{store: s, log: log}
}

// Get computes the profile for a user id. It always returns a usable
// profile; failures are logged and reported as the default shell.
func (p *ProfileService) Get(ctx context.Context, userID string) *model.Profile {
	u, err := p.store.Users().Get(ctx, userID)
	if err != nil {
		p.log.Warn().Err(err).Str("user_id", userID).Msg("profile: user lookup failed, serving default shell")
		return BuildProfile(userID, nil, nil, nil)
	}
	reviews, err := p.store.Reviews().ListByReviewedUser(ctx, userID)
	if err != nil {
		p.log.Warn().Err(err).Str("user_id", userID).Msg("profile: review snapshot failed, serving default shell")
		return BuildProfile(userID, nil, nil, nil)
	}
	items, err := p.store.Items().List(ctx, model.ItemFilter{OwnerID: userID, IncludeSold: true})
	if err != nil {
		p.log.Warn().Err(err).Str("user_id", userID).Msg("profile: item snapshot failed, serving default shell")
		return BuildProfile(userID, nil, nil, nil)
	}
	return BuildProfile(userID, []*model.User{u}, reviews, items)
}

// Update patches the mutable profile fields and returns the user projection.
func (p *ProfileService) Update(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	if err := validate.NonEmpty("userId", userID); err != nil {
		return nil, err
	}
	u, err := p.store.Users().Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// BuildProfile derives a profile from point-in-time snapshots. It has no
// side effects and never mutates its inputs; identical snapshots yield
// identical derived values (averageRating, totalReviews, totalListings,
// reviews). When the user is absent from the snapshot it returns a default
// shell instead of failing, tolerating partially available data.
func BuildProfile(userID string, users []*model.User, reviews []*model.Review, items []*model.Item) *model.Profile {
	var user *model.User
	for _, u := range users {
		if u.ID == userID {
			user = u
			break
		}
	}
	if user == nil {
		return &model.Profile{
			ID:       userID,
			Name:     "User",
			JoinedAt: time.Now().UTC(),
			Reviews:  []model.Review{},
		}
	}

	matched := []model.Review{}
	sum := 0
	for _, r := range reviews {
		if r.ReviewedUserID == userID {
			matched = append(matched, *r)
			sum += r.Rating
		}
	}
	avg := 0.0
	if len(matched) > 0 {
		avg = float64(sum) / float64(len(matched))
	}

	listings := 0
	for _, it := range items {
		if it.UserID == userID {
			listings++
		}
	}

	return &model.Profile{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Bio:           user.Bio,
		Avatar:        user.Avatar,
		JoinedAt:      user.JoinedAt,
		AverageRating: avg,
		TotalReviews:  len(matched),
		TotalListings: listings,
		Reviews:       matched,
	}
}
