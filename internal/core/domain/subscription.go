package domain

import (
	"regexp"
	"strings"
	"time"
)

type SubscriptionSource string

const (
	SubscriptionSourceFooter   SubscriptionSource = "footer"
	SubscriptionSourcePopup    SubscriptionSource = "popup"
	SubscriptionSourceCheckout SubscriptionSource = "checkout"
)

func (s SubscriptionSource) Valid() bool {
	switch s {
	case SubscriptionSourceFooter, SubscriptionSourcePopup, SubscriptionSourceCheckout:
		return true
	}
	return false
}

type EmailSubscription struct {
	Email     string             `json:"email"`
	IsActive  bool               `json:"isActive"`
	Source    SubscriptionSource `json:"source"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// NormalizeEmail lowercases and trims an address, returning ok=false when it
// does not look like an email.
func NormalizeEmail(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	return email, emailPattern.MatchString(email)
}
