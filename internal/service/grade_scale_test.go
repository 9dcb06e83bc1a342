package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeScaleRankFollowsOrder(t *testing.T) {
	order := DefaultPolicy().Scale.Grades()
	scale, err := NewGradeScale(order)
	require.NoError(t, err)

	seen := make(map[int]string, len(order))
	for i, g1 := range order {
		r1, ok := scale.Rank(g1)
		require.True(t, ok, g1)
		if prev, dup := seen[r1]; dup {
			t.Fatalf("rank %d shared by %s and %s", r1, prev, g1)
		}
		seen[r1] = g1
		for j, g2 := range order {
			r2, _ := scale.Rank(g2)
			assert.Equal(t, i < j, r1 < r2, "%s vs %s", g1, g2)
		}
	}
}

func TestGradeScaleUnknownGrades(t *testing.T) {
	scale, err := NewGradeScale([]string{"F", "C", "A"})
	require.NoError(t, err)

	rank, ok := scale.Rank(" C ")
	assert.True(t, ok)
	assert.Equal(t, 1, rank)

	for _, g := range []string{"", "W", "a"} {
		rank, ok := scale.Rank(g)
		assert.False(t, ok, g)
		assert.Less(t, rank, 0)
	}
}

func TestNewGradeScaleRejectsBadOrder(t *testing.T) {
	_, err := NewGradeScale(nil)
	assert.Error(t, err)

	_, err = NewGradeScale([]string{"F", "A", "F"})
	assert.ErrorContains(t, err, "listed twice")

	_, err = NewGradeScale([]string{"F", " "})
	assert.Error(t, err)
}
