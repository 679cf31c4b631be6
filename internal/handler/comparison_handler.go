package handler

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"

	"pdf-workbench/internal/domain"
)

// ComparisonHandler serves the visual comparison tool
type ComparisonHandler struct {
	comparisonService domain.ComparisonService
	logger            domain.Logger
	maxFileSize       int64
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(comparisonService domain.ComparisonService, logger domain.Logger, maxFileSize int64) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
		logger:            logger,
		maxFileSize:       maxFileSize,
	}
}

type comparisonRow struct {
	Page            int    `json:"page"`
	Left            string `json:"left,omitempty"`
	Right           string `json:"right,omitempty"`
	Overlay         string `json:"overlay,omitempty"`
	Note            string `json:"note,omitempty"`
	DifferingPixels *int   `json:"differing_pixels,omitempty"`
}

type comparisonResponse struct {
	LeftName  string          `json:"left_name"`
	RightName string          `json:"right_name"`
	Rows      []comparisonRow `json:"rows"`
}

var dataURLEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Compare handles POST /compare with exactly two PDFs in the "files" field.
// Rows are encoded as the engine produces them so page bitmaps can be freed
// early, but nothing is written until the whole run succeeded.
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r, h.maxFileSize, 2); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	headers := r.MultipartForm.File["files"]
	names := make([]string, 0, len(headers))
	files := make([][]byte, 0, len(headers))
	for _, header := range headers {
		name, data, err := readPDF(header, h.maxFileSize)
		if err != nil {
			writeAppError(w, h.logger, err)
			return
		}
		names = append(names, name)
		files = append(files, data)
	}

	resp := comparisonResponse{Rows: []comparisonRow{}}
	var buf bytes.Buffer
	err := h.comparisonService.CompareFiles(r.Context(), files, func(page domain.ComparisonPage) error {
		row := comparisonRow{Page: page.PageIndex + 1, Note: page.Note}
		var err error
		if page.Left != nil {
			if row.Left, err = pngDataURL(&buf, page.Left); err != nil {
				return err
			}
		}
		if page.Right != nil {
			if row.Right, err = pngDataURL(&buf, page.Right); err != nil {
				return err
			}
		}
		if page.HasDiff() {
			if row.Overlay, err = pngDataURL(&buf, page.Overlay); err != nil {
				return err
			}
			count := page.Mask.Count()
			row.DifferingPixels = &count
		}
		resp.Rows = append(resp.Rows, row)
		return nil
	})
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	resp.LeftName, resp.RightName = names[0], names[1]
	writeJSON(w, http.StatusOK, resp)
}

// pngDataURL encodes img as a base64 data: URL
func pngDataURL(buf *bytes.Buffer, img image.Image) (string, error) {
	buf.Reset()
	if err := dataURLEncoder.Encode(buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
