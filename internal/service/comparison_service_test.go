package service

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	grey  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

func newTestEngine(r *MockRasterizer) *ComparisonEngine {
	return NewComparisonService(r, NewMockLogger(), 70, domain.DefaultDiffThreshold, domain.DefaultDiffAlpha)
}

func TestComparisonEngine_UnequalPageCounts(t *testing.T) {
	r := NewMockRasterizer()
	left := r.AddPlain("three", 3)
	right := r.AddPlain("two", 2)

	rows, err := newTestEngine(r).Compare(context.Background(), left, right)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i := 0; i < 2; i++ {
		assert.Equal(t, i, rows[i].PageIndex)
		assert.NotNil(t, rows[i].Left)
		assert.NotNil(t, rows[i].Right)
		require.True(t, rows[i].HasDiff())
		assert.Zero(t, rows[i].Mask.Count())
		assert.Empty(t, rows[i].Note)
	}

	last := rows[2]
	assert.NotNil(t, last.Left)
	assert.Nil(t, last.Right)
	assert.False(t, last.HasDiff())
	assert.Nil(t, last.Overlay)
	assert.Equal(t, domain.NoteMissingRight, last.Note)
}

func TestComparisonEngine_MissingLeftSide(t *testing.T) {
	r := NewMockRasterizer()
	left := r.AddPlain("one", 1)
	right := r.AddPlain("two", 2)

	rows, err := newTestEngine(r).Compare(context.Background(), left, right)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[1].Left)
	assert.NotNil(t, rows[1].Right)
	assert.Equal(t, domain.NoteMissingLeft, rows[1].Note)
}

func TestComparisonEngine_DifferentContentAndAspect(t *testing.T) {
	r := NewMockRasterizer()
	left := r.Add("portrait", fakePage{fill: white, aspect: 1.5})
	right := r.Add("squat", fakePage{fill: grey, aspect: 1.0})

	rows, err := newTestEngine(r).Compare(context.Background(), left, right)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 70, row.Left.Bounds().Dx())
	assert.Equal(t, 105, row.Left.Bounds().Dy())
	assert.Equal(t, 70, row.Right.Bounds().Dy())

	require.NotNil(t, row.Mask)
	assert.Equal(t, 70, row.Mask.Width)
	assert.Equal(t, 70, row.Mask.Height)
	assert.Equal(t, 70*70, row.Mask.Count())

	c := row.Overlay.NRGBAAt(10, 10)
	assert.Equal(t, color.NRGBA{R: 255, A: domain.DefaultDiffAlpha}, c)
}

func TestComparisonEngine_LoadFailureAbortsBeforeRendering(t *testing.T) {
	r := NewMockRasterizer()
	left := r.AddPlain("ok", 2)

	var rows int
	err := newTestEngine(r).CompareEach(context.Background(), left, []byte("garbage"), func(domain.ComparisonPage) error {
		rows++
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
	assert.Zero(t, rows)

	opened, closed, renders := r.Stats()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed, "left document must be closed when the right one fails")
	assert.Zero(t, renders)
}

func TestComparisonEngine_RenderFailureAbortsRun(t *testing.T) {
	r := NewMockRasterizer()
	left := r.Add("left", fakePage{fill: white, aspect: 1}, fakePage{fill: white, aspect: 1, fail: true})
	right := r.AddPlain("right", 2)

	rows, err := newTestEngine(r).Compare(context.Background(), left, right)
	require.Error(t, err)
	assert.Nil(t, rows, "no partial results")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))

	_, closed, _ := r.Stats()
	assert.Equal(t, 2, closed)
}

func TestComparisonEngine_CompareFilesArity(t *testing.T) {
	r := NewMockRasterizer()
	doc := r.AddPlain("doc", 1)
	engine := newTestEngine(r)

	for _, files := range [][][]byte{nil, {doc}, {doc, doc, doc}} {
		err := engine.CompareFiles(context.Background(), files, func(domain.ComparisonPage) error { return nil })
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	}
	opened, _, _ := r.Stats()
	assert.Zero(t, opened, "arity check happens before any work")

	var count int
	err := engine.CompareFiles(context.Background(), [][]byte{doc, doc}, func(domain.ComparisonPage) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestComparisonEngine_ConsumerErrorStopsRun(t *testing.T) {
	r := NewMockRasterizer()
	left := r.AddPlain("a", 4)
	right := r.AddPlain("b", 4)
	stop := errors.New("client went away")

	var seen int
	err := newTestEngine(r).CompareEach(context.Background(), left, right, func(domain.ComparisonPage) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestComparisonEngine_CancelledContext(t *testing.T) {
	r := NewMockRasterizer()
	left := r.AddPlain("a", 2)
	right := r.AddPlain("b", 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(r).Compare(ctx, left, right)
	assert.ErrorIs(t, err, context.Canceled)
}
