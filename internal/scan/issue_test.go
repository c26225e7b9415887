package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Issue Categories and Report:
// - ParseCategory() accepts every canonical name and rejects unknowns
// - ProjectScoped() is true exactly for files/dependencies/devDependencies
// - NewReport() with no lists enables everything
// - NewReport() include list limits to the named categories
// - NewReport() exclude list removes categories, also after include
// - NewReport() rejects unknown names in either list
// - Categories() returns enabled categories in canonical order
// - AnyExports()/AnyDependencies() group helpers

func TestParseCategory_AcceptsCanonicalNames(t *testing.T) {
	for _, c := range AllIssueCategories {
		parsed, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseCategory_RejectsUnknownName(t *testing.T) {
	_, err := ParseCategory("classes")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestIssueCategory_ProjectScoped(t *testing.T) {
	assert.True(t, CategoryFiles.ProjectScoped())
	assert.True(t, CategoryDependencies.ProjectScoped())
	assert.True(t, CategoryDevDependencies.ProjectScoped())
	assert.False(t, CategoryUnresolved.ProjectScoped())
	assert.False(t, CategoryExports.ProjectScoped())
	assert.False(t, CategoryTypes.ProjectScoped())
	assert.False(t, CategoryNSExports.ProjectScoped())
	assert.False(t, CategoryNSTypes.ProjectScoped())
	assert.False(t, CategoryDuplicates.ProjectScoped())
}

func TestNewReport_DefaultsToAllCategories(t *testing.T) {
	r, err := NewReport(nil, nil)
	require.NoError(t, err)

	for _, c := range AllIssueCategories {
		assert.True(t, r.Enabled(c), "category %s", c)
	}
}

func TestNewReport_IncludeLimitsCategories(t *testing.T) {
	r, err := NewReport([]string{"exports", "types"}, nil)
	require.NoError(t, err)

	assert.True(t, r.Exports)
	assert.True(t, r.Types)
	assert.False(t, r.Files)
	assert.False(t, r.Dependencies)
	assert.False(t, r.NSExports)
	assert.False(t, r.Duplicates)
}

func TestNewReport_ExcludeRemovesCategories(t *testing.T) {
	r, err := NewReport(nil, []string{"devDependencies", "duplicates"})
	require.NoError(t, err)

	assert.False(t, r.DevDependencies)
	assert.False(t, r.Duplicates)
	assert.True(t, r.Dependencies)
	assert.True(t, r.Exports)
}

func TestNewReport_ExcludeAppliesAfterInclude(t *testing.T) {
	r, err := NewReport([]string{"exports", "types"}, []string{"types"})
	require.NoError(t, err)

	assert.True(t, r.Exports)
	assert.False(t, r.Types)
}

func TestNewReport_RejectsUnknownCategory(t *testing.T) {
	_, err := NewReport([]string{"exprots"}, nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = NewReport(nil, []string{"everything"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestNewReport_TrimsWhitespace(t *testing.T) {
	r, err := NewReport([]string{" exports ", "types"}, nil)
	require.NoError(t, err)

	assert.True(t, r.Exports)
	assert.True(t, r.Types)
}

func TestReport_CategoriesCanonicalOrder(t *testing.T) {
	r, err := NewReport([]string{"duplicates", "files", "exports"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []IssueCategory{CategoryFiles, CategoryExports, CategoryDuplicates}, r.Categories())
}

func TestReport_GroupHelpers(t *testing.T) {
	r := Report{NSTypes: true}
	assert.True(t, r.AnyExports())
	assert.False(t, r.AnyDependencies())

	r = Report{Unresolved: true}
	assert.False(t, r.AnyExports())
	assert.True(t, r.AnyDependencies())

	r = Report{Files: true, Duplicates: true}
	assert.False(t, r.AnyExports())
	assert.False(t, r.AnyDependencies())
}
