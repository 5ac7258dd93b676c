package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

func testWindow() schema.ChallengeWindow {
	return schema.ChallengeWindow{
		RequiredCommitCount: 30,
		StartDate:           fixedNow.AddDate(0, 0, -10),
		EndDate:             fixedNow.AddDate(0, 0, 20),
		State:               schema.InProgressState,
		DaysFromStart:       10,
		DaysToEnd:           20,
		TotalDays:           30,
	}
}

func TestFixed(t *testing.T) {
	count, err := NewFixed(42).CommitCount(context.Background(), testWindow())
	require.NoError(t, err)
	assert.Equal(t, 42, count)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFixed(42).CommitCount(ctx, testWindow())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCounter(t *testing.T) {
	ctx := context.Background()
	window := testWindow()

	t.Run("counts records", func(t *testing.T) {
		lister := &contract.MockCommitLister{}
		lister.On("ListCommits", ctx, window).Return([]schema.CommitRecord{{SHA: "a"}, {SHA: "b"}, {SHA: "c"}}, nil)

		count, err := NewCounter(lister).CommitCount(ctx, window)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		lister.AssertExpectations(t)
	})

	t.Run("wraps lister errors", func(t *testing.T) {
		boom := errors.New("rate limited")
		lister := &contract.MockCommitLister{}
		lister.On("ListCommits", mock.Anything, window).Return(nil, boom)
		lister.On("Identity").Return("github:owner:abc")

		_, err := NewCounter(lister).CommitCount(ctx, window)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "github:owner:abc")
	})
}
