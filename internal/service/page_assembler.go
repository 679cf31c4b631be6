package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"sync"

	"pdf-workbench/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDirOnce sync.Once

// PDFCPUAssembler copies pages between documents with pdfcpu
type PDFCPUAssembler struct {
	logger domain.Logger
}

// NewPDFCPUAssembler creates a page assembler. pdfcpu's on-disk config
// directory is disabled; every call builds its own configuration.
func NewPDFCPUAssembler(logger domain.Logger) *PDFCPUAssembler {
	disableConfigDirOnce.Do(api.DisableConfigDir)
	return &PDFCPUAssembler{logger: logger}
}

func (a *PDFCPUAssembler) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages of source
func (a *PDFCPUAssembler) PageCount(ctx context.Context, source []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := api.PageCount(bytes.NewReader(source), a.configuration())
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}

// Build writes a new document holding the pages of source in order.
// order holds 0-based page indices.
func (a *PDFCPUAssembler) Build(ctx context.Context, source []byte, order []int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	selection := make([]string, len(order))
	for i, idx := range order {
		if idx < 0 {
			return nil, domain.ErrPageOutOfRange
		}
		selection[i] = strconv.Itoa(idx + 1)
	}

	var out bytes.Buffer
	if err := api.Collect(bytes.NewReader(source), &out, selection, a.configuration()); err != nil {
		return nil, fmt.Errorf("failed to assemble pages: %w", err)
	}
	a.logger.Debug("Document assembled", "pages", len(order), "size_bytes", out.Len())
	return out.Bytes(), nil
}
