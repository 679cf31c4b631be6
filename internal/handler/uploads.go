package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	apperrors "pdf-workbench/pkg/errors"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temp files.
const multipartMemory = 32 << 20

var pdfMagic = []byte("%PDF-")

// parseUploadForm caps the body at maxFiles uploads of maxFileSize each
func parseUploadForm(w http.ResponseWriter, r *http.Request, maxFileSize int64, maxFiles int) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize*int64(maxFiles)+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return apperrors.NewValidationError("Invalid upload", err.Error())
	}
	return nil
}

// readPDF validates and reads one uploaded PDF
func readPDF(header *multipart.FileHeader, maxFileSize int64) (string, []byte, error) {
	// Sanitize filename (strip any path components)
	name := strings.TrimSpace(filepath.Base(header.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document.pdf"
	}

	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return "", nil, apperrors.NewValidationError("Unsupported file type. Only PDF files are accepted.", name)
	}
	if header.Size > maxFileSize {
		return "", nil, apperrors.NewValidationError(
			fmt.Sprintf("File too large. Maximum file size is %dMB.", maxFileSize>>20),
			name,
		)
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, apperrors.NewValidationError("Failed to read upload", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return "", nil, apperrors.NewValidationError("Failed to read upload", err.Error())
	}
	if int64(len(data)) > maxFileSize {
		return "", nil, apperrors.NewValidationError("File too large", name)
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return "", nil, apperrors.NewValidationError("File is not a PDF", name)
	}
	return name, data, nil
}
