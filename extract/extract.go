// --- gradpath-server/extract/extract.go ---
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF indicates the uploaded bytes are not a PDF document at all.
var ErrNotPDF = errors.New("document is not a PDF")

// Text extracts every text fragment from every page of a PDF, concatenated in
// document order. Extraction failure is fatal: the caller gets an error and no
// partial text, never a silently empty success.
//
// Malformed PDFs can stall or panic inside the decoder, so the work runs in a
// goroutine bounded by ctx and panics are converted to errors.
func Text(ctx context.Context, data []byte) (string, error) {
	if !looksLikePDF(data) {
		return "", ErrNotPDF
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("pdf decoder panic: %v", r)}
			}
		}()
		text, err := extract(data)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("pdf extraction aborted: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("pdf extraction failed: %w", r.err)
		}
		return r.text, nil
	}
}

func extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or damaged pages yield no text but do not abort the
			// document; a fully unreadable document fails at NewReader instead.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// looksLikePDF checks the "%PDF-" magic bytes.
func looksLikePDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
