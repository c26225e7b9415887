package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Issue Store:
// - AddSymbolIssue() deduplicates per (file, symbol) within a category
// - AddSymbolIssue() keeps insertion order per category
// - The same symbol in different files or categories is recorded separately
// - AddProjectIssue() deduplicates by symbol across the whole project
// - Counters always equal store cardinality
// - Counters() returns a copy, not the live map
// - HasSymbolIssue() reflects recorded keys only
// - Total() sums all category counters

func TestStore_AddSymbolIssueDeduplicates(t *testing.T) {
	s := NewStore()

	added := s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "foo"})
	require.True(t, added)
	added = s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "foo"})
	assert.False(t, added)

	assert.Equal(t, 1, s.Counter(CategoryExports))
	assert.Len(t, s.SymbolIssues(CategoryExports), 1)
}

func TestStore_AddSymbolIssueKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddSymbolIssue(CategoryExports, Issue{FilePath: "b.ts", Symbol: "z"})
	s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "y"})
	s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "x"})

	issues := s.SymbolIssues(CategoryExports)
	require.Len(t, issues, 3)
	assert.Equal(t, "z", issues[0].Symbol)
	assert.Equal(t, "y", issues[1].Symbol)
	assert.Equal(t, "x", issues[2].Symbol)
}

func TestStore_SameSymbolDifferentFileOrCategory(t *testing.T) {
	s := NewStore()

	assert.True(t, s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "foo"}))
	assert.True(t, s.AddSymbolIssue(CategoryExports, Issue{FilePath: "b.ts", Symbol: "foo"}))
	assert.True(t, s.AddSymbolIssue(CategoryTypes, Issue{FilePath: "a.ts", Symbol: "foo"}))

	assert.Equal(t, 2, s.Counter(CategoryExports))
	assert.Equal(t, 1, s.Counter(CategoryTypes))
}

func TestStore_AddProjectIssueDeduplicatesGlobally(t *testing.T) {
	s := NewStore()

	assert.True(t, s.AddProjectIssue(CategoryDependencies, "lodash"))
	assert.False(t, s.AddProjectIssue(CategoryDependencies, "lodash"))
	assert.True(t, s.AddProjectIssue(CategoryDependencies, "ramda"))

	assert.Equal(t, 2, s.Counter(CategoryDependencies))
	assert.Equal(t, []string{"lodash", "ramda"}, s.ProjectIssues(CategoryDependencies))
}

func TestStore_CountersMatchCardinality(t *testing.T) {
	s := NewStore()
	s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "one"})
	s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "two"})
	s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "two"})
	s.AddProjectIssue(CategoryFiles, "dead.ts")
	s.AddProjectIssue(CategoryFiles, "dead.ts")

	for _, c := range AllIssueCategories {
		if c.ProjectScoped() {
			assert.Equal(t, len(s.ProjectIssues(c)), s.Counter(c), "category %s", c)
		} else {
			assert.Equal(t, len(s.SymbolIssues(c)), s.Counter(c), "category %s", c)
		}
	}
}

func TestStore_CountersReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddProjectIssue(CategoryFiles, "dead.ts")

	counters := s.Counters()
	counters[CategoryFiles] = 99

	assert.Equal(t, 1, s.Counter(CategoryFiles))
}

func TestStore_HasSymbolIssue(t *testing.T) {
	s := NewStore()
	s.AddSymbolIssue(CategoryNSExports, Issue{FilePath: "a.ts", Symbol: "foo"})

	assert.True(t, s.HasSymbolIssue(CategoryNSExports, "a.ts", "foo"))
	assert.False(t, s.HasSymbolIssue(CategoryNSExports, "a.ts", "bar"))
	assert.False(t, s.HasSymbolIssue(CategoryNSExports, "b.ts", "foo"))
	assert.False(t, s.HasSymbolIssue(CategoryExports, "a.ts", "foo"))
}

func TestStore_TotalSumsAllCategories(t *testing.T) {
	s := NewStore()
	s.AddSymbolIssue(CategoryExports, Issue{FilePath: "a.ts", Symbol: "foo"})
	s.AddSymbolIssue(CategoryTypes, Issue{FilePath: "a.ts", Symbol: "Bar"})
	s.AddProjectIssue(CategoryDependencies, "lodash")

	assert.Equal(t, 3, s.Total())
}
