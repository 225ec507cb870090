package rulegen

import (
	"fmt"
	"go/token"
	"path/filepath"

	"github.com/donutnomad/rulekit/internal/utils"
	"github.com/donutnomad/rulekit/rule"
)

// Annotation names understood by the generator.
const (
	AnnotationFamily = "RuleFamily"
	AnnotationRule   = "Rule"
)

// Family is a package-level *rule.Family variable marked @RuleFamily.
type Family struct {
	Var      string
	Prefix   string
	Position token.Position
}

// Rule is a *rule.Descriptor variable marked @Rule.
type Rule struct {
	Var    string
	ID     string
	Number int
	// Name is the part of Var after the id, without the separating underscore.
	Name string

	Owner       rule.AnalyzerKey // empty for helpers
	Category    string
	Severity    rule.Severity
	HasSeverity bool

	Position token.Position
}

// Slug is the snake case form of Name, e.g. no_panic.
func (r *Rule) Slug() string {
	return utils.ToSnakeCase(r.Name)
}

// Package is one directory holding a family and its rules.
type Package struct {
	Dir    string
	Name   string
	Family *Family
	Rules  []*Rule
}

// OutputPath is the generated file for the package.
func (p *Package) OutputPath(fileName string) string {
	return filepath.Join(p.Dir, fileName)
}

// Error is a problem with one annotated declaration.
type Error struct {
	Pos token.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Err: fmt.Errorf(format, args...)}
}

// Result is the outcome of a generator run.
type Result struct {
	Packages []*Package
	// Files maps output paths to their generated content.
	Files map[string][]byte
	// Stale maps output paths that differ from the disk to a unified diff.
	// Only filled in check mode.
	Stale map[string]string
	// Errors are per-declaration problems. Packages with errors produce no
	// output.
	Errors []error
}

func (r *Result) addError(err error) {
	r.Errors = append(r.Errors, err)
}
