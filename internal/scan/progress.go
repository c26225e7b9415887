package scan

import "time"

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can render progress bars, log messages, or remain silent.
// Reporting is purely observational and must never alter scan results.
type ProgressReporter interface {
	// OnCollectStart is called when the entry-file dependency pass begins.
	OnCollectStart(entryFiles int)

	// OnScanStart is called when the per-file classification pass begins.
	OnScanStart(totalFiles int)

	// OnFileScanned is called after each file is fully classified.
	OnFileScanned(filePath string)

	// OnIssueRecorded is called for every symbol-issue insertion attempt,
	// including duplicates, with the category's current count.
	OnIssueRecorded(category IssueCategory, count int)

	// OnFinalize is called when the project-scope dependency pass begins.
	OnFinalize()

	// OnScanComplete is called once with the final counters.
	OnScanComplete(counters map[IssueCategory]int, elapsed time.Duration)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// It is the default, keeping library use and tests silent.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnCollectStart(entryFiles int)                     {}
func (n *NoOpProgressReporter) OnScanStart(totalFiles int)                        {}
func (n *NoOpProgressReporter) OnFileScanned(filePath string)                     {}
func (n *NoOpProgressReporter) OnIssueRecorded(category IssueCategory, count int) {}
func (n *NoOpProgressReporter) OnFinalize()                                       {}
func (n *NoOpProgressReporter) OnScanComplete(counters map[IssueCategory]int, elapsed time.Duration) {
}
