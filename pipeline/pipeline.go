// Package pipeline drives the end-to-end extraction run.
package pipeline

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/mgranica/pdf-reader/config"
	"github.com/mgranica/pdf-reader/extractor"
	"github.com/mgranica/pdf-reader/fetcher"
	"github.com/mgranica/pdf-reader/storage"
	"github.com/mgranica/pdf-reader/titles"
)

// Run downloads the PDF, decomposes its pages, pairs tables with titles, and
// writes one CSV per table under resultsPath. It returns the number of tables
// written. Fetch and document-open failures abort the run; a failure to write
// one table is logged and the remaining tables are still written.
func Run(ctx context.Context, cfg *config.Config, resultsPath string) (int, error) {
	path, err := fetcher.DownloadPDF(ctx, cfg.PDFURL)
	if err != nil {
		return 0, err
	}
	defer os.Remove(path)
	log.WithField("url", cfg.PDFURL).Info("PDF downloaded")

	pages, err := extractor.ReadPages(path, cfg.TableSettings.DetectorConfig())
	if err != nil {
		return 0, err
	}

	tabs := titles.Associate(pages, cfg.TitlePattern())
	if len(tabs) == 0 {
		log.Info("no tables detected")
		return 0, nil
	}

	writer, err := storage.NewWriter(resultsPath)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, t := range tabs {
		file, err := writer.WriteTable(t)
		if err != nil {
			log.WithFields(log.Fields{"page": t.Page, "table": t.Ordinal}).
				WithError(err).Error("failed to save table")
			continue
		}
		written++
		log.WithFields(log.Fields{"page": t.Page, "table": t.Ordinal, "title": t.Title, "file": file}).
			Info("table saved")
	}

	return written, nil
}
