// Package fetcher downloads the source PDF to local disk.
package fetcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

const fetchTimeout = 30 * time.Second

// DownloadPDF fetches the document at pdfURL into a temporary file and
// returns its path. There is no retry: any network or HTTP error is fatal to
// the run. The caller is responsible for removing the file.
func DownloadPDF(ctx context.Context, pdfURL string) (string, error) {
	tmpFile, err := os.CreateTemp("", "pdf_reader_*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpFile.Close()

	client := resty.New().SetTimeout(fetchTimeout)
	resp, err := client.R().
		SetContext(ctx).
		SetOutput(tmpFile.Name()).
		Get(pdfURL)
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to download PDF: %w", err)
	}
	if resp.IsError() {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to download PDF: server returned %s", resp.Status())
	}

	return tmpFile.Name(), nil
}
