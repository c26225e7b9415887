package scan

import "time"

// Phase is one stage of a scan run.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseCollecting  Phase = "collecting"
	PhaseClassifying Phase = "classifying"
	PhaseFinalizing  Phase = "finalizing"
	PhaseDone        Phase = "done"
)

// Scanner runs dead-code classification over a loaded project.
type Scanner interface {
	// Run executes one full classification pass and returns the recorded
	// issues and counters. Run is synchronous and single-threaded; it does
	// not fail on well-formed inputs (malformed declarations are skipped).
	Run(files ProjectFiles) *Result

	// Phase returns the stage the most recent Run reached.
	Phase() Phase
}

// Result is the product of one run.
type Result struct {
	Issues   *Store
	Counters map[IssueCategory]int
	Elapsed  time.Duration
}

// Total returns the sum of all counters.
func (r *Result) Total() int {
	total := 0
	for _, n := range r.Counters {
		total += n
	}
	return total
}

type scanner struct {
	source       SourceModel
	deps         DependencyAnalyzer
	report       Report
	publicAsUsed bool
	progress     ProgressReporter
	phase        Phase
}

// Option configures a Scanner.
type Option func(*scanner)

// WithReport selects the issue categories to record. Default: all.
func WithReport(r Report) Option {
	return func(s *scanner) {
		s.report = r
	}
}

// WithProgress configures progress reporting. Default: no-op.
func WithProgress(progress ProgressReporter) Option {
	return func(s *scanner) {
		s.progress = progress
	}
}

// WithPublicTagAsUsed treats @public-tagged declarations as intentionally
// exported API and skips classifying them.
func WithPublicTagAsUsed() Option {
	return func(s *scanner) {
		s.publicAsUsed = true
	}
}

// New creates a Scanner over the given source model and dependency analyzer.
func New(source SourceModel, deps DependencyAnalyzer, opts ...Option) Scanner {
	s := &scanner{
		source:   source,
		deps:     deps,
		report:   AllCategories(),
		progress: &NoOpProgressReporter{},
		phase:    PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scanner) Phase() Phase {
	return s.phase
}

// Run walks the project in a fixed order: unreachable production files
// first, then the entry-file dependency pass, then per-file classification
// of the remaining production files, then project-scope dependency issues.
// Phases whose categories are all disabled are skipped outright.
func (s *scanner) Run(files ProjectFiles) *Result {
	started := time.Now()
	s.phase = PhaseIdle
	store := NewStore()

	reachable := NewFileSet(files.Reachable)
	usedProduction, unreferenced := Partition(reachable, files.Production)
	if s.report.Files {
		for _, f := range unreferenced {
			store.AddProjectIssue(CategoryFiles, f)
		}
	}

	entrySet := NewFileSet(files.Entry)
	entryFiles, classifyFiles := Partition(entrySet, usedProduction)

	if s.report.AnyDependencies() {
		s.phase = PhaseCollecting
		s.progress.OnCollectStart(len(entryFiles))
		for _, f := range entryFiles {
			s.collectUnresolved(store, f)
		}
	}

	if s.report.AnyDependencies() || s.report.AnyExports() || s.report.Duplicates {
		s.phase = PhaseClassifying
		s.progress.OnScanStart(len(classifyFiles))
		for _, f := range classifyFiles {
			if s.report.AnyDependencies() {
				s.collectUnresolved(store, f)
			}
			if s.report.AnyExports() {
				s.classifyExports(store, f)
			}
			if s.report.Duplicates {
				s.detectDuplicates(store, f)
			}
			s.progress.OnFileScanned(f)
		}
	}

	if s.report.Dependencies || s.report.DevDependencies {
		s.phase = PhaseFinalizing
		s.progress.OnFinalize()
		if s.report.Dependencies {
			for _, dep := range s.deps.UnusedDependencies() {
				store.AddProjectIssue(CategoryDependencies, dep)
			}
		}
		if s.report.DevDependencies {
			for _, dep := range s.deps.UnusedDevDependencies() {
				store.AddProjectIssue(CategoryDevDependencies, dep)
			}
		}
	}

	s.phase = PhaseDone
	counters := store.Counters()
	elapsed := time.Since(started)
	s.progress.OnScanComplete(counters, elapsed)
	return &Result{Issues: store, Counters: counters, Elapsed: elapsed}
}

// record inserts a symbol issue and always notifies progress, duplicate or
// not. Counting and progress ticking stay independent.
func (s *scanner) record(store *Store, c IssueCategory, iss Issue) {
	store.AddSymbolIssue(c, iss)
	s.progress.OnIssueRecorded(c, store.Counter(c))
}

// collectUnresolved queries unresolved imports for one file. The query runs
// whenever any dependency category is enabled (the analyzer tracks manifest
// usage as a side effect of scanning); recording requires `unresolved`.
func (s *scanner) collectUnresolved(store *Store, filePath string) {
	specifiers := s.deps.UnresolvedImports(filePath)
	if !s.report.Unresolved {
		return
	}
	for _, spec := range specifiers {
		s.record(store, CategoryUnresolved, Issue{FilePath: filePath, Symbol: spec})
	}
}
