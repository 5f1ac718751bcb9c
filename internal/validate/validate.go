// Package validate is the validation gate: per-operation field checks that
// fail fast, before any store mutation. Every error wraps
// model.ErrValidation and names the offending field.
package validate

import (
	"fmt"
	"regexp"

	"github.com/campustrade/campustrade/internal/model"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const MinPasswordLen = 6

func failf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, model.ErrValidation)...)
}

func NonEmpty(field, v string) error {
	if v == "" {
		return failf("%s is required", field)
	}
	return nil
}

func Email(v string) error {
	if v == "" {
		return failf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return failf("invalid email")
	}
	return nil
}

func Password(v string) error {
	if len(v) < MinPasswordLen {
		return failf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Rating enforces the 1-5 bound the original system left unchecked.
func Rating(v int) error {
	if v < 1 || v > 5 {
		return failf("rating must be between 1 and 5")
	}
	return nil
}

func ItemType(v string) error {
	if v != model.TypeSale && v != model.TypeRent {
		return failf("type must be %q or %q", model.TypeSale, model.TypeRent)
	}
	return nil
}

func ItemStatus(v string) error {
	switch v {
	case model.ItemAvailable, model.ItemSold, model.ItemRented:
		return nil
	}
	return failf("status must be one of available, sold, rented")
}

func NotificationType(v string) error {
	switch v {
	case model.NotifMessage, model.NotifListing, model.NotifSale, model.NotifGeneral:
		return nil
	}
	return failf("type must be one of message, listing, sale, general")
}

// -------- Operation specific gates ----------

func Signup(name, email, password string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password(password)
}

func Login(email, password string) error {
	if err := NonEmpty("email", email); err != nil {
		return err
	}
	return NonEmpty("password", password)
}

func CreateItem(it *model.Item) error {
	if err := NonEmpty("title", it.Title); err != nil {
		return err
	}
	if err := NonEmpty("description", it.Description); err != nil {
		return err
	}
	if it.Price < 0 {
		return failf("price must be non-negative")
	}
	if err := NonEmpty("category", it.Category); err != nil {
		return err
	}
	if err := NonEmpty("userId", it.UserID); err != nil {
		return err
	}
	if it.Type != "" {
		return ItemType(it.Type)
	}
	return nil
}

func SendMessage(conversationID, senderID, content string) error {
	if err := NonEmpty("conversationId", conversationID); err != nil {
		return err
	}
	if err := NonEmpty("senderId", senderID); err != nil {
		return err
	}
	return NonEmpty("content", content)
}

func CreateNotification(n *model.Notification) error {
	if err := NonEmpty("userId", n.UserID); err != nil {
		return err
	}
	if err := NotificationType(n.Type); err != nil {
		return err
	}
	if err := NonEmpty("title", n.Title); err != nil {
		return err
	}
	return NonEmpty("message", n.Message)
}

func CreateReview(reviewedUserID string, rating int, comment string) error {
	if err := NonEmpty("reviewedUserId", reviewedUserID); err != nil {
		return err
	}
	if err := Rating(rating); err != nil {
		return err
	}
	return NonEmpty("comment", comment)
}
