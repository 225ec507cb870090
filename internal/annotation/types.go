package annotation

import (
	"go/token"
	"path/filepath"
	"sort"
)

// Kind is the kind of declaration an annotation is attached to.
type Kind int

const (
	KindVar Kind = iota + 1
	KindConst
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindConst:
		return "const"
	default:
		return "unknown"
	}
}

// Target is one annotated package-level name.
type Target struct {
	Kind        Kind
	Name        string
	PackageName string
	FilePath    string
	Position    token.Position
	Type        string // declared type, "" when inferred
	HasValue    bool   // declared with an initializer
	Annotations []*Annotation
}

// Dir returns the package directory of the target.
func (t *Target) Dir() string {
	return filepath.Dir(t.FilePath)
}

// Result is the outcome of a scan, sorted by file and position.
type Result struct {
	Targets []*Target
}

// ByAnnotation returns the targets carrying an annotation called name.
func (r *Result) ByAnnotation(name string) []*Target {
	var out []*Target
	for _, t := range r.Targets {
		if Get(t.Annotations, name) != nil {
			out = append(out, t)
		}
	}
	return out
}

// ByDir groups targets by package directory.
func (r *Result) ByDir() map[string][]*Target {
	out := make(map[string][]*Target)
	for _, t := range r.Targets {
		out[t.Dir()] = append(out[t.Dir()], t)
	}
	return out
}

func (r *Result) sort() {
	sort.SliceStable(r.Targets, func(i, j int) bool {
		a, b := r.Targets[i].Position, r.Targets[j].Position
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Offset < b.Offset
	})
}
