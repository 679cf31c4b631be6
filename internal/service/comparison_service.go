package service

import (
	"context"
	"fmt"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// ComparisonEngine renders two documents page by page and highlights the
// pixels that differ.
type ComparisonEngine struct {
	rasterizer  domain.Rasterizer
	logger      domain.Logger
	renderWidth int
	threshold   uint8
	alpha       uint8
}

// NewComparisonService creates a comparison engine
func NewComparisonService(
	rasterizer domain.Rasterizer,
	logger domain.Logger,
	renderWidth int,
	threshold uint8,
	alpha uint8,
) *ComparisonEngine {
	if renderWidth <= 0 {
		renderWidth = domain.DefaultRenderWidth
	}
	return &ComparisonEngine{
		rasterizer:  rasterizer,
		logger:      logger,
		renderWidth: renderWidth,
		threshold:   threshold,
		alpha:       alpha,
	}
}

// CompareFiles compares exactly two documents, calling each for every row
func (s *ComparisonEngine) CompareFiles(ctx context.Context, files [][]byte, each func(domain.ComparisonPage) error) error {
	if len(files) != 2 {
		return apperrors.NewValidationError(
			"Please select exactly two PDF files to compare",
			fmt.Sprintf("got %d", len(files)),
		)
	}
	return s.CompareEach(ctx, files[0], files[1], each)
}

// Compare runs a full comparison and collects every row
func (s *ComparisonEngine) Compare(ctx context.Context, left, right []byte) ([]domain.ComparisonPage, error) {
	var rows []domain.ComparisonPage
	err := s.CompareEach(ctx, left, right, func(row domain.ComparisonPage) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CompareEach opens both documents, then renders and diffs one page index at
// a time. Rows are handed to each as soon as they are complete so the caller
// can encode and drop the bitmaps before the next page is rendered. Any open
// or render failure aborts the whole run.
func (s *ComparisonEngine) CompareEach(ctx context.Context, left, right []byte, each func(domain.ComparisonPage) error) error {
	leftDoc, err := s.rasterizer.Open(left)
	if err != nil {
		s.logger.Error("Failed to open left document", err)
		return apperrors.NewProcessingError("Failed to load the first PDF", err)
	}
	defer leftDoc.Close()

	rightDoc, err := s.rasterizer.Open(right)
	if err != nil {
		s.logger.Error("Failed to open right document", err)
		return apperrors.NewProcessingError("Failed to load the second PDF", err)
	}
	defer rightDoc.Close()

	leftCount, rightCount := leftDoc.NumPage(), rightDoc.NumPage()
	total := max(leftCount, rightCount)
	s.logger.Info("Comparison started", "left_pages", leftCount, "right_pages", rightCount, "render_width", s.renderWidth)

	for pageIndex := 0; pageIndex < total; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		row, err := s.comparePage(ctx, leftDoc, rightDoc, pageIndex, leftCount, rightCount)
		if err != nil {
			s.logger.Error("Comparison aborted", err, "page", pageIndex+1)
			return apperrors.NewProcessingError(fmt.Sprintf("Failed to render page %d", pageIndex+1), err)
		}
		if err := each(row); err != nil {
			return err
		}
	}

	s.logger.Info("Comparison finished", "rows", total)
	return nil
}

func (s *ComparisonEngine) comparePage(
	ctx context.Context,
	leftDoc, rightDoc domain.RasterDocument,
	pageIndex, leftCount, rightCount int,
) (domain.ComparisonPage, error) {
	row := domain.ComparisonPage{PageIndex: pageIndex}
	hasLeft := pageIndex < leftCount
	hasRight := pageIndex < rightCount

	// the two sides of one page are independent; pages stay sequential
	g, gctx := errgroup.WithContext(ctx)
	if hasLeft {
		g.Go(func() error {
			img, err := leftDoc.RenderPage(gctx, pageIndex, s.renderWidth)
			row.Left = img
			return err
		})
	}
	if hasRight {
		g.Go(func() error {
			img, err := rightDoc.RenderPage(gctx, pageIndex, s.renderWidth)
			row.Right = img
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ComparisonPage{}, err
	}

	switch {
	case hasLeft && hasRight:
		row.Mask = ComputeDiffMask(row.Left, row.Right, s.threshold)
		row.Overlay = row.Mask.Overlay(s.alpha)
		s.logger.Debug("Page compared", "page", pageIndex+1, "differing_pixels", row.Mask.Count())
	case hasLeft:
		row.Note = domain.NoteMissingRight
	case hasRight:
		row.Note = domain.NoteMissingLeft
	default:
		row.Note = domain.NoteNoCorresponding
	}
	return row, nil
}

