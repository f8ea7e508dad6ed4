package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(TestID{Path: []string{"anything"}}))

	require.NoError(t, filters.MustMatch.Set("^echo"))
	require.NoError(t, filters.MustNotMatch.Set("complex"))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"echo", "basic http"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"echo", "complex echo"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"faults"}}))

	assert.Equal(t, `"^echo"`, filters.MustMatch.String())
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestMustMatchSelectsEnclosingGroups(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^echo$/^soap12$/complex"))

	assert.True(t, filters.AsFilter(TestID{Path: []string{"echo"}}))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"echo", "soap12"}}))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"echo", "soap12", "complex echo"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"echo", "soap12", "basic echo"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"echo", "basic http"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"faults"}}))
}
