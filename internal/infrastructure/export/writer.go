package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"TrendsReporter/internal/ports"
	"TrendsReporter/pkg/logger"
)

// Writer saves rendered reports to the configured output directory.
type Writer struct {
	outputDir string
	log       interface{ Printf(string, ...any) }
}

var _ ports.Exporter = (*Writer)(nil)

// NewWriter builds an exporter rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "output"
	}
	return &Writer{
		outputDir: outputDir,
		log:       logger.New("export"),
	}
}

// Export writes the report to disk and returns its path. The filename
// carries the generation timestamp so runs never overwrite each other.
func (w *Writer) Export(report string, generatedAt time.Time) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := "AI-News-Report-" + generatedAt.Format("2006-01-02-15-04-05") + ".md"
	path := filepath.Join(w.outputDir, name)

	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	if w.log != nil {
		w.log.Printf("report saved to %s (%d bytes)", path, len(report))
	}
	return path, nil
}
