package scan

// FileSet is a membership set of file paths.
type FileSet map[string]struct{}

// NewFileSet builds a FileSet from a slice of paths.
func NewFileSet(paths []string) FileSet {
	s := make(FileSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether path is a member.
func (s FileSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Partition splits candidates by membership in set, preserving candidate
// order within both outputs. Every candidate lands in exactly one output.
func Partition(set FileSet, candidates []string) (in, notIn []string) {
	for _, c := range candidates {
		if set.Has(c) {
			in = append(in, c)
		} else {
			notIn = append(notIn, c)
		}
	}
	return in, notIn
}
