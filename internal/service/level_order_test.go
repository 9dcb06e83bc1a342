package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-plan-api/internal/models"
)

func TestLevelOrderMatchesWithAndWithoutOrdinal(t *testing.T) {
	levels, err := NewLevelOrder([]string{"1Freshman", "2Sophomore", "3Junior", "4Senior", "5Final"})
	require.NoError(t, err)

	for _, input := range []string{"3Junior", "Junior", "junior", " JUNIOR "} {
		pos, ok := levels.Position(input)
		assert.True(t, ok, input)
		assert.Equal(t, 2, pos, input)
	}

	level, ok := levels.Parse("senior")
	assert.True(t, ok)
	assert.Equal(t, models.Level("4Senior"), level)
}

func TestLevelOrderUpTo(t *testing.T) {
	levels, err := NewLevelOrder([]string{"1Freshman", "2Sophomore", "3Junior"})
	require.NoError(t, err)

	set, err := levels.UpTo("Sophomore")
	require.NoError(t, err)
	assert.Equal(t, map[int]struct{}{0: {}, 1: {}}, set)

	_, err = levels.UpTo("Graduate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1Freshman, 2Sophomore, 3Junior")
}

func TestNewLevelOrderRejectsCollisions(t *testing.T) {
	_, err := NewLevelOrder([]string{"1Junior", "2Junior"})
	assert.Error(t, err)

	_, err = NewLevelOrder(nil)
	assert.Error(t, err)
}
