// Package types defines every cross‑package data structure used by the codecollect CLI.
package types

// StringSet is an unordered set of names, extensions, or relative paths.
type StringSet map[string]struct{}

// NewStringSet builds a set holding every provided value.
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// Contains reports whether value is a member of the set.
func (set StringSet) Contains(value string) bool {
	_, exists := set[value]
	return exists
}

// Clone returns an independent copy of the set.
func (set StringSet) Clone() StringSet {
	cloned := make(StringSet, len(set))
	for value := range set {
		cloned[value] = struct{}{}
	}
	return cloned
}

// Union returns a new set holding the members of both sets.
func (set StringSet) Union(other StringSet) StringSet {
	merged := set.Clone()
	for value := range other {
		merged[value] = struct{}{}
	}
	return merged
}

// PathMatcher reports whether a root-relative, slash-separated path is ignored.
// It is satisfied by compiled .gitignore rules.
type PathMatcher interface {
	MatchesPath(relativePath string) bool
}

// FilterConfiguration holds the resolved inclusion and exclusion sets for one run.
// Extension matching lower-cases the candidate file extension; every other
// comparison is case-sensitive. Exclusion always wins over inclusion.
type FilterConfiguration struct {
	IncludeExtensions  StringSet
	ExcludeExtensions  StringSet
	ExcludeDirectories StringSet
	ExcludeFiles       StringSet
	// IncludePaths restricts aggregation to these working-directory relative
	// paths. An empty set means no restriction.
	IncludePaths StringSet
	// IgnoreMatcher is optional and prunes paths matched by .gitignore rules.
	IgnoreMatcher PathMatcher
}

// FileEntry is one aggregated file. ReadError is set when the content could not
// be read or decoded, in which case Content is empty.
type FileEntry struct {
	RelativePath string
	Content      string
	SizeBytes    int64
	ReadError    error
}

// TraversalResult is the outcome of a single collection run.
type TraversalResult struct {
	Tree  string
	Files []FileEntry
}

// OutputSummary captures aggregate information about the assembled artifact.
type OutputSummary struct {
	TotalFiles  int
	TotalSize   string
	TotalTokens int
	Model       string
}
