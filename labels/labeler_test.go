package labels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	cases := []struct {
		i, length int
		expected  string
	}{
		{0, 5, "A1100"},
		{1, 5, "A1101"},
		{99, 5, "A1199"},
		{100, 5, "A1200"},
		{3500, 5, "A2100"},
		{122500, 5, "B1100"},
		{Capacity(5) - 1, 5, "ZZZ99"},
		{0, 6, "A11000"},
		{1234, 7, "A111234"},
		{0, 9, "A11000000"},
	}
	for _, c := range cases {
		label, err := Label(c.i, c.length)
		require.NoError(t, err)
		assert.Equal(t, c.expected, label)
		assert.Len(t, label, c.length)
	}

	_, err := Label(Capacity(5), 5)
	assert.True(t, errors.Is(err, ErrCapacity))
	_, err = Label(-1, 5)
	assert.True(t, errors.Is(err, ErrCapacity))
	_, err = Label(0, 4)
	assert.Error(t, err)
	_, err = Label(0, 10)
	assert.Error(t, err)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 3185000, Capacity(5))
	assert.Equal(t, 31850000, Capacity(6))
	assert.Equal(t, 5, AutoLength(0))
	assert.Equal(t, 5, AutoLength(3185000))
	assert.Equal(t, 6, AutoLength(3185001))
	assert.Equal(t, 7, AutoLength(31850001))
}

func TestLabelsUnique(t *testing.T) {
	n := 20000
	labels, err := Labels(n, 0)
	require.NoError(t, err)
	require.Len(t, labels, n)
	seen := make(map[string]bool, n)
	for _, label := range labels {
		assert.Len(t, label, 5)
		assert.False(t, seen[label], label)
		seen[label] = true
	}

	labels, err = Labels(3, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1100000", "A1100001", "A1100002"}, labels)

	_, err = Labels(Capacity(5)+1, 5)
	assert.True(t, errors.Is(err, ErrCapacity))
}
