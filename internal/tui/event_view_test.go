package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/countdown/internal/countdown"
	"github.com/mrz1836/countdown/internal/event"
)

func sampleEvent() *event.Event {
	return &event.Event{
		ID:          "evt-1",
		Title:       "winter raffle",
		EndDate:     "2025-12-31",
		Description: "Win **great** prizes.",
		Rewards: []event.Reward{
			{ID: 3, Name: "Sticker", Count: 100, Rank: 3},
			{ID: 1, Name: "Laptop", Count: 1, Rank: 1, Detail: "14 inch"},
			{ID: 2, Name: "Headphones", Count: 5, Rank: 2},
		},
	}
}

func TestSortRewards(t *testing.T) {
	t.Parallel()

	rewards := []event.Reward{
		{ID: 9, Rank: 2},
		{ID: 4, Rank: 1},
		{ID: 2, Rank: 2},
	}

	sorted := SortRewards(rewards)
	require.Len(t, sorted, 3)
	assert.Equal(t, []int{4, 2, 9}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, 9, rewards[0].ID, "input order is kept")
}

func TestEventView_Render(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	view := EventView{
		Event:     sampleEvent(),
		Remaining: countdown.Remaining{Days: 2, Hours: 1},
		Target:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Location:  time.UTC,
		Width:     100,
	}
	require.NoError(t, view.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "Winter Raffle")
	assert.Contains(t, out, "great")
	assert.Contains(t, out, "Rewards")
	assert.Contains(t, out, "Time left: 2d 01h 00m 00s")
	assert.Contains(t, out, "Deadline: Wed, 31 Dec 2025 00:00 UTC")

	laptop := strings.Index(out, "Laptop")
	headphones := strings.Index(out, "Headphones")
	sticker := strings.Index(out, "Sticker")
	require.Positive(t, laptop)
	assert.Less(t, laptop, headphones)
	assert.Less(t, headphones, sticker)
}

func TestEventView_RenderExpiredWithoutExtras(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	view := EventView{
		Event:     &event.Event{Title: "Closed Event"},
		Remaining: countdown.Remaining{IsExpired: true},
		Target:    time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		Location:  time.UTC,
	}
	require.NoError(t, view.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "Closed Event")
	assert.Contains(t, out, "event has ended")
	assert.NotContains(t, out, "Rewards")
	assert.NotContains(t, out, "Time left")
}
