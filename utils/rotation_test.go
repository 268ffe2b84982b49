package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatorCyclesRoundRobin(t *testing.T) {
	r := NewTemplateRotator()
	candidates := []string{"a", "b", "c"}

	var got []string
	for i := 0; i < 6; i++ {
		id, err := r.Next(candidates)
		require.NoError(t, err)
		got = append(got, id)
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, got)
}

func TestRotatorUniformDistribution(t *testing.T) {
	r := NewTemplateRotator()
	candidates := TemplateIDs("")
	require.NotEmpty(t, candidates)

	counts := map[string]int{}
	rounds := 4
	for i := 0; i < rounds*len(candidates); i++ {
		id, err := r.Next(candidates)
		require.NoError(t, err)
		counts[id]++
	}

	for _, id := range candidates {
		assert.Equal(t, rounds, counts[id], id)
	}
}

func TestRotatorEmptyCandidates(t *testing.T) {
	r := NewTemplateRotator()
	_, err := r.Next(nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRotatorIsSafeForConcurrentUse(t *testing.T) {
	r := NewTemplateRotator()
	candidates := []string{"a", "b", "c"}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Next(candidates)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestIndependentRotatorsDoNotShareState(t *testing.T) {
	candidates := []string{"a", "b", "c"}

	r1 := NewTemplateRotator()
	_, err := r1.Next(candidates)
	require.NoError(t, err)

	r2 := NewTemplateRotator()
	id, err := r2.Next(candidates)
	require.NoError(t, err)
	assert.Equal(t, "a", id)
}

func TestSelectTemplateExplicitPinWins(t *testing.T) {
	r := NewTemplateRotator()
	id, err := r.SelectTemplate("modern_tech", true, "partnership")
	require.NoError(t, err)
	assert.Equal(t, "modern_tech", id)

	// The pin must not advance the rotation counter
	next, err := r.Next([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a", next)
}

func TestSelectTemplateRotationDisabled(t *testing.T) {
	r := NewTemplateRotator()
	id, err := r.SelectTemplate("", false, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplateID, id)
}

func TestSelectTemplateRotatesWithinCategory(t *testing.T) {
	r := NewTemplateRotator()
	partnership := TemplateIDs("partnership")
	require.Len(t, partnership, 2)

	first, err := r.SelectTemplate("", true, "partnership")
	require.NoError(t, err)
	second, err := r.SelectTemplate("", true, "partnership")
	require.NoError(t, err)
	third, err := r.SelectTemplate("", true, "partnership")
	require.NoError(t, err)

	assert.Equal(t, partnership[0], first)
	assert.Equal(t, partnership[1], second)
	assert.Equal(t, partnership[0], third)
}

func TestSelectTemplateEmptyCategory(t *testing.T) {
	r := NewTemplateRotator()
	_, err := r.SelectTemplate("", true, "nonexistent")
	assert.ErrorIs(t, err, ErrNoCandidates)
}
