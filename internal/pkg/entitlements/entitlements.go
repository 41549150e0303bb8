package entitlements

import (
	"errors"
	"time"

	"github.com/alloservices/alloci/app/models"
	"gorm.io/gorm"
)

// SubscriptionSource is the single read the oracle needs. The payment
// repository satisfies it.
type SubscriptionSource interface {
	LatestSubscriptionByUser(userID uint) (*models.Subscription, error)
}

// freeCategories always pass the gate; everything else in the directory
// requires an active subscription.
var freeCategories = map[string]bool{
	models.CategoryUrgence: true,
	models.CategoryAlertes: true,
}

// RequiresPremium reports whether a directory category is gated.
func RequiresPremium(category string) bool {
	return !freeCategories[category]
}

// IsPremium answers "is this user premium right now". It is a pure function
// of stored subscriptions and the given clock: nothing ever writes an
// "expired" state, every caller re-evaluates at read time.
func IsPremium(src SubscriptionSource, userID uint, now time.Time) (bool, *time.Time, error) {
	sub, err := src.LatestSubscriptionByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	if !sub.ActiveAt(now) {
		return false, nil, nil
	}
	expires := sub.ExpiresAt
	return true, &expires, nil
}
