package lifecycle_test

import (
	"testing"

	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRanking(t *testing.T) {
	r := lifecycle.DefaultRanking()

	t.Run("should be constructed", func(t *testing.T) {
		require.NoError(t, r.Validate())
	})

	t.Run("should track planned loaded transit in order", func(t *testing.T) {
		assert.Equal(t,
			[]lifecycle.Stage{lifecycle.StagePlanned, lifecycle.StageLoaded, lifecycle.StageTransit},
			r.TrackedStages())
		assert.False(t, r.IsTracked(lifecycle.StageDelivered))
		assert.False(t, r.IsTracked(lifecycle.StageReceived))
	})

	t.Run("should rank terminal stages above transit", func(t *testing.T) {
		assert.True(t, r.IsAbove(lifecycle.StageDelivered, lifecycle.StageTransit))
		assert.True(t, r.IsAbove(lifecycle.StageReturned, lifecycle.StageTransit))
		assert.True(t, r.IsAbove(lifecycle.StageTransit, lifecycle.StageLoaded))
		assert.False(t, r.IsAbove(lifecycle.StagePlanned, lifecycle.StageLoaded))
		assert.False(t, r.IsAbove(lifecycle.StageLoaded, lifecycle.StageLoaded))
	})

	t.Run("should rank unknown stages out of band", func(t *testing.T) {
		assert.Equal(t, lifecycle.OutOfBandLevel, r.Level("lost"))
		assert.True(t, r.IsAbove("lost", lifecycle.StageDelivered))
		assert.False(t, r.IsKnown("lost"))
	})
}

func TestRanking_EligibleForTrip(t *testing.T) {
	r := lifecycle.DefaultRanking()

	testCases := []struct {
		state    lifecycle.Stage
		eligible bool
	}{
		{lifecycle.StageReceived, true},
		{lifecycle.StagePlanned, true},
		{lifecycle.StageLoaded, true},
		{lifecycle.StageTransit, false},
		{lifecycle.StageTransferred, false},
		{lifecycle.StageDelivered, false},
		{lifecycle.StageReturned, false},
		{"lost", false},
	}

	for _, tc := range testCases {
		t.Run(tc.state.String(), func(t *testing.T) {
			assert.Equal(t, tc.eligible, r.EligibleForTrip(tc.state))
		})
	}
}

func TestRanking_IsEndStage(t *testing.T) {
	r := lifecycle.DefaultRanking()

	assert.True(t, r.IsEndStage(lifecycle.StageDelivered))
	assert.True(t, r.IsEndStage(lifecycle.StageReturned))
	assert.True(t, r.IsEndStage(lifecycle.StageTransferred))
	assert.False(t, r.IsEndStage(lifecycle.StageTransit))
	assert.False(t, r.IsEndStage("lost"))
}

func TestNewRanking(t *testing.T) {
	t.Run("should reject an empty order table", func(t *testing.T) {
		_, err := lifecycle.NewRanking(nil, map[lifecycle.Stage]int{lifecycle.StageLoaded: 2})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject tracked stages without a level", func(t *testing.T) {
		_, err := lifecycle.NewRanking(
			map[lifecycle.Stage]int{lifecycle.StagePlanned: 1, "staged": 2},
			map[lifecycle.Stage]int{lifecycle.StagePlanned: 1, lifecycle.StageLoaded: 2},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `tracked stage "staged" has no level`)
	})

	t.Run("should copy the given tables", func(t *testing.T) {
		order := map[lifecycle.Stage]int{lifecycle.StagePlanned: 1}
		levels := map[lifecycle.Stage]int{lifecycle.StagePlanned: 1, lifecycle.StageLoaded: 2}

		r, err := lifecycle.NewRanking(order, levels)
		require.NoError(t, err)

		levels[lifecycle.StageLoaded] = 99
		order[lifecycle.StageTransit] = 3

		assert.Equal(t, 2, r.Level(lifecycle.StageLoaded))
		assert.False(t, r.IsTracked(lifecycle.StageTransit))
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var r lifecycle.Ranking

		assert.Equal(t, lifecycle.ErrRankingIsNotConstructed, r.Validate())
	})
}
