package scaffold

import "fmt"

// Resolution is the user's choice for a modified configuration file.
type Resolution int

const (
	// Keep leaves the user's version in place.
	Keep Resolution = iota
	// Overwrite replaces the user's version with the bundled template.
	Overwrite
)

func (r Resolution) String() string {
	switch r {
	case Keep:
		return "keep"
	case Overwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// Conflict is a tracked file the user changed since the last install.
type Conflict struct {
	// Path is slash-separated and relative to <root>/.ai/task-manager.
	Path     string
	Current  []byte
	Incoming []byte
	// Unrecorded is set when the file differs from the template but has no
	// fingerprint in the record, e.g. because it was kept on the last run.
	Unrecorded bool
}

// ConflictResolver decides what to do with each conflicting file. Paths
// missing from the returned map are kept.
type ConflictResolver interface {
	Resolve(conflicts []Conflict) (map[string]Resolution, error)
}

// ResolverFunc adapts a function to ConflictResolver.
type ResolverFunc func(conflicts []Conflict) (map[string]Resolution, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(conflicts []Conflict) (map[string]Resolution, error) {
	return f(conflicts)
}

// ResolveAll returns a resolver that answers r for every conflict.
func ResolveAll(r Resolution) ConflictResolver {
	return ResolverFunc(func(conflicts []Conflict) (map[string]Resolution, error) {
		out := make(map[string]Resolution, len(conflicts))
		for _, c := range conflicts {
			out[c.Path] = r
		}
		return out, nil
	})
}
