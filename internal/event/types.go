// Package event talks to the event API: it fetches the event a countdown
// runs against and submits entries while the event is open.
package event

import (
	"strings"

	"github.com/mrz1836/countdown/internal/errors"
)

// Reward is one prize tier of an event.
type Reward struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Image           string `json:"image"`
	Count           int    `json:"count"`
	Detail          string `json:"detail"`
	BackDescription string `json:"backDescription"`
	Rank            int    `json:"rank"`
}

// Event is the event description served by the API.
// EndDate is the raw deadline string; countdown.ParseEndDate turns it into an instant.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	EndDate     string   `json:"endDate"`
	Description string   `json:"description"`
	Rewards     []Reward `json:"rewards"`
}

// Entry is a participant's submission.
type Entry struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	AgreedTerms bool   `json:"agreedTerms"`
}

// Validate checks that every field is filled in and the terms were accepted.
func (e Entry) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", e.Name},
		{"phone", e.Phone},
		{"email", e.Email},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errors.Wrapf(errors.ErrEmptyValue, "entry %s", f.name)
		}
	}
	if !e.AgreedTerms {
		return errors.ErrTermsNotAccepted
	}
	return nil
}
