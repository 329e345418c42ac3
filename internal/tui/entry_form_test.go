package tui

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctderrors "github.com/mrz1836/countdown/internal/errors"
	"github.com/mrz1836/countdown/internal/event"
)

func TestRequiredField(t *testing.T) {
	t.Parallel()

	validate := requiredField("email")

	require.NoError(t, validate("a@b.co"))

	for _, blank := range []string{"", "   ", "\t\n"} {
		err := validate(blank)
		require.ErrorIs(t, err, ctderrors.ErrEmptyValue)
		assert.Contains(t, err.Error(), "email")
	}
}

func TestRequireTerms(t *testing.T) {
	t.Parallel()

	require.NoError(t, requireTerms(true))
	require.ErrorIs(t, requireTerms(false), ctderrors.ErrTermsNotAccepted)
}

func TestNewEntryForm(t *testing.T) {
	t.Parallel()

	entry := &event.Entry{Name: "Kim"}
	form := NewEntryForm("", entry)
	require.NotNil(t, form)

	assert.Equal(t, "Kim", entry.Name, "building the form keeps defaults")
	assert.Equal(t, huh.StateNormal, form.State)
}
