package main

import (
	"image"
	"testing"

	"pdf-workbench/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	cases := []struct {
		arg    string
		source int
		target int
		after  bool
	}{
		{"1:5", 0, 4, false},
		{"1:5:after", 0, 4, true},
		{"3:1:before", 2, 0, false},
	}
	for _, tc := range cases {
		source, target, after, err := parseMove(tc.arg)
		require.NoError(t, err, tc.arg)
		assert.Equal(t, tc.source, source, tc.arg)
		assert.Equal(t, tc.target, target, tc.arg)
		assert.Equal(t, tc.after, after, tc.arg)
	}
}

func TestParseMove_Invalid(t *testing.T) {
	for _, arg := range []string{"", "1", "a:2", "1:b", "1:2:sideways", "1:2:after:x"} {
		_, _, _, err := parseMove(arg)
		assert.Error(t, err, arg)
	}
}

func TestPageSides_LeftBeforeRight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	both := pageSides(domain.ComparisonPage{Left: img, Right: img})
	require.Len(t, both, 2)
	assert.Equal(t, "left", both[0].name)
	assert.Equal(t, "right", both[1].name)

	rightOnly := pageSides(domain.ComparisonPage{Right: img})
	require.Len(t, rightOnly, 1)
	assert.Equal(t, "right", rightOnly[0].name)

	assert.Empty(t, pageSides(domain.ComparisonPage{}))
}
