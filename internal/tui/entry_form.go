package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"

	ctderrors "github.com/mrz1836/countdown/internal/errors"
	"github.com/mrz1836/countdown/internal/event"
)

// TermsPrompt is the question the entry form asks before submission.
const TermsPrompt = "I agree to the event terms and the use of my contact details"

// requiredField returns a validator that rejects blank input for field.
func requiredField(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return ctderrors.Wrapf(ctderrors.ErrEmptyValue, "%s", field)
		}
		return nil
	}
}

func requireTerms(agreed bool) error {
	if !agreed {
		return ctderrors.ErrTermsNotAccepted
	}
	return nil
}

// NewEntryForm builds the entry form bound to entry.
// Existing field values are used as defaults.
func NewEntryForm(title string, entry *event.Entry) *huh.Form {
	if title == "" {
		title = "Enter the event"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Name").
				Value(&entry.Name).
				Validate(requiredField("name")),
			huh.NewInput().
				Title("Phone").
				Placeholder("010-1234-5678").
				Value(&entry.Phone).
				Validate(requiredField("phone")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&entry.Email).
				Validate(requiredField("email")),
			huh.NewConfirm().
				Title(TermsPrompt).
				Affirmative("Agree").
				Negative("Decline").
				Value(&entry.AgreedTerms).
				Validate(requireTerms),
		),
	)
}

// CollectEntry runs the entry form and returns the completed entry.
// Returns ErrMenuCanceled if the user aborts and errors.ErrNonInteractiveMode
// without a terminal.
func CollectEntry(ctx context.Context, title string, defaults event.Entry, cfg *MenuConfig) (event.Entry, error) {
	if cfg == nil {
		cfg = NewMenuConfig()
	}

	entry := defaults
	if err := runForm(ctx, NewEntryForm(title, &entry), cfg, "entry form failed"); err != nil {
		return event.Entry{}, err
	}

	entry.Name = strings.TrimSpace(entry.Name)
	entry.Phone = strings.TrimSpace(entry.Phone)
	entry.Email = strings.TrimSpace(entry.Email)

	if err := entry.Validate(); err != nil {
		return event.Entry{}, err
	}
	return entry, nil
}
