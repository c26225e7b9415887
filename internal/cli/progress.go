package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/deadwoodhq/deadwood/internal/scan"
)

// CLIProgressReporter implements scan progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet        bool
	scanBar      *progressbar.ProgressBar
	totalFiles   int
	scannedFiles int
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnCollectStart(entryFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Collecting imports from %d entry files...", entryFiles)
}

func (c *CLIProgressReporter) OnScanStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.totalFiles = totalFiles
	c.scannedFiles = 0

	c.scanBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileScanned(filePath string) {
	if c.quiet {
		return
	}
	if c.scanBar != nil {
		c.scannedFiles++
		c.scanBar.Add(1)
	}
}

// OnIssueRecorded is a no-op; issue counts surface in the report's summary table.
func (c *CLIProgressReporter) OnIssueRecorded(category scan.IssueCategory, count int) {}

func (c *CLIProgressReporter) OnFinalize() {
	if c.quiet {
		return
	}
	if c.scanBar != nil {
		c.scanBar.Finish()
		c.scanBar = nil
	}
	log.Println("Checking manifest dependencies...")
}

func (c *CLIProgressReporter) OnScanComplete(counters map[scan.IssueCategory]int, elapsed time.Duration) {
	if c.quiet {
		return
	}
	if c.scanBar != nil {
		c.scanBar.Finish()
		c.scanBar = nil
	}

	total := 0
	for _, n := range counters {
		total += n
	}
	fmt.Println()
	fmt.Printf("✓ Scan complete: %s issues in %.1fs\n", formatNumber(total), elapsed.Seconds())
}

var _ scan.ProgressReporter = (*CLIProgressReporter)(nil)

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
