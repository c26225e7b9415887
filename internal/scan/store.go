package scan

// Store accumulates categorized issues for one run. Symbol-issue categories
// deduplicate per (file, symbol); project-issue categories deduplicate by
// symbol alone. Counters always equal the cardinality of their category.
// A Store is populated monotonically and never mutated after the run.
type Store struct {
	symbols      map[IssueCategory]map[string]map[string]Issue
	symbolOrder  map[IssueCategory][]Issue
	project      map[IssueCategory]map[string]struct{}
	projectOrder map[IssueCategory][]string
	counters     map[IssueCategory]int
}

// NewStore returns an empty store with zeroed counters for every category.
func NewStore() *Store {
	s := &Store{
		symbols:      make(map[IssueCategory]map[string]map[string]Issue),
		symbolOrder:  make(map[IssueCategory][]Issue),
		project:      make(map[IssueCategory]map[string]struct{}),
		projectOrder: make(map[IssueCategory][]string),
		counters:     make(map[IssueCategory]int, len(AllIssueCategories)),
	}
	for _, c := range AllIssueCategories {
		s.counters[c] = 0
	}
	return s
}

// AddSymbolIssue inserts iss under category if its (file, symbol) key is not
// already present. The counter advances only on first insertion. Returns
// whether the issue was newly recorded.
func (s *Store) AddSymbolIssue(c IssueCategory, iss Issue) bool {
	byFile, ok := s.symbols[c]
	if !ok {
		byFile = make(map[string]map[string]Issue)
		s.symbols[c] = byFile
	}
	bySymbol, ok := byFile[iss.FilePath]
	if !ok {
		bySymbol = make(map[string]Issue)
		byFile[iss.FilePath] = bySymbol
	}
	if _, exists := bySymbol[iss.Symbol]; exists {
		return false
	}
	bySymbol[iss.Symbol] = iss
	s.symbolOrder[c] = append(s.symbolOrder[c], iss)
	s.counters[c]++
	return true
}

// AddProjectIssue inserts symbol into the category's global set. The counter
// advances only when the symbol is new. Returns whether it was newly recorded.
func (s *Store) AddProjectIssue(c IssueCategory, symbol string) bool {
	set, ok := s.project[c]
	if !ok {
		set = make(map[string]struct{})
		s.project[c] = set
	}
	if _, exists := set[symbol]; exists {
		return false
	}
	set[symbol] = struct{}{}
	s.projectOrder[c] = append(s.projectOrder[c], symbol)
	s.counters[c]++
	return true
}

// HasSymbolIssue reports whether (filePath, symbol) is recorded under category.
func (s *Store) HasSymbolIssue(c IssueCategory, filePath, symbol string) bool {
	byFile, ok := s.symbols[c]
	if !ok {
		return false
	}
	bySymbol, ok := byFile[filePath]
	if !ok {
		return false
	}
	_, ok = bySymbol[symbol]
	return ok
}

// SymbolIssues returns the category's issues in insertion order.
func (s *Store) SymbolIssues(c IssueCategory) []Issue {
	return s.symbolOrder[c]
}

// ProjectIssues returns the category's symbols in insertion order.
func (s *Store) ProjectIssues(c IssueCategory) []string {
	return s.projectOrder[c]
}

// Counter returns the number of issues recorded under category.
func (s *Store) Counter(c IssueCategory) int {
	return s.counters[c]
}

// Counters returns a copy of all category counters.
func (s *Store) Counters() map[IssueCategory]int {
	out := make(map[IssueCategory]int, len(s.counters))
	for c, n := range s.counters {
		out[c] = n
	}
	return out
}

// Total returns the sum of all category counters.
func (s *Store) Total() int {
	total := 0
	for _, n := range s.counters {
		total += n
	}
	return total
}
