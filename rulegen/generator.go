// Package rulegen generates the registration code for annotated rule
// declarations.
//
// A family variable is marked with @RuleFamily and each descriptor variable
// with @Rule. The rule id is taken from the variable name:
//
//	// @RuleFamily(prefix=MOCK)
//	var Rules = rule.NewFamily(rule.Config{Prefix: "MOCK"})
//
//	// @Rule(owner=mock, category=Mock, severity=error)
//	var MOCK0001_NoPanic *rule.Descriptor
//
// The generator writes an init function that assigns MOCK0001_NoPanic with
// Rules.Declare("mock", 1, "Mock", rule.SeverityError). A @Rule without an
// owner becomes an untagged helper created with Rules.New.
package rulegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/donutnomad/rulekit/internal/annotation"
	"github.com/donutnomad/rulekit/internal/utils"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/exp/maps"
)

// DefaultOutput is the generated file name used when Options.Output is empty.
const DefaultOutput = "zz_rules_generated.go"

type Options struct {
	Output  string // generated file name inside each package
	Check   bool   // compare with the files on disk instead of writing
	Verbose bool
	Workers int
}

type Generator struct {
	opts    Options
	scanner *annotation.Scanner
}

func New(opts Options) *Generator {
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	return &Generator{
		opts: opts,
		scanner: annotation.NewScanner(
			annotation.WithWorkers(opts.Workers),
			annotation.WithVerbose(opts.Verbose),
			annotation.WithFilter(AnnotationFamily, AnnotationRule),
		),
	}
}

// Scan finds and validates the annotated declarations under patterns
// without rendering anything.
func (g *Generator) Scan(ctx context.Context, patterns ...string) (*Result, error) {
	scanned, err := g.scanner.Scan(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make(map[string][]byte)}
	byDir := scanned.ByDir()
	dirs := maps.Keys(byDir)
	sort.Strings(dirs)

	for _, dir := range dirs {
		pkg, errs := collect(dir, byDir[dir])
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		if pkg.Family == nil {
			continue
		}
		if g.opts.Verbose {
			fmt.Printf("[rulegen] %s", spew.Sdump(pkg))
		}
		result.Packages = append(result.Packages, pkg)
	}
	return result, nil
}

// Run scans patterns and writes, or in check mode compares, one generated
// file per package.
func (g *Generator) Run(ctx context.Context, patterns ...string) (*Result, error) {
	result, err := g.Scan(ctx, patterns...)
	if err != nil {
		return nil, err
	}
	if g.opts.Check {
		result.Stale = make(map[string]string)
	}

	for _, pkg := range result.Packages {
		if len(pkg.Rules) == 0 {
			continue
		}
		path := pkg.OutputPath(g.opts.Output)
		src, err := Generate(pkg, path)
		if err != nil {
			result.addError(err)
			continue
		}
		result.Files[path] = src

		if err := g.emit(result, path, src); err != nil {
			result.addError(err)
		}
	}
	return result, nil
}

// Generate renders and formats the generated file of pkg.
func Generate(pkg *Package, path string) ([]byte, error) {
	gen, err := Render(pkg)
	if err != nil {
		return nil, err
	}
	return utils.Format(path, gen.Bytes())
}

func (g *Generator) emit(result *Result, path string, src []byte) error {
	old, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if g.opts.Check {
		diff, err := Diff(path, old, src)
		if err != nil {
			return err
		}
		if diff != "" {
			result.Stale[path] = diff
		}
		return nil
	}

	if bytes.Equal(old, src) {
		if g.opts.Verbose {
			fmt.Printf("[rulegen] %s is up to date\n", path)
		}
		return nil
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if g.opts.Verbose {
		fmt.Printf("[rulegen] wrote %s\n", path)
	}
	return nil
}

// Diff returns a unified diff from the file on disk to the generated
// content, or "" when they are equal.
func Diff(path string, onDisk, generated []byte) (string, error) {
	if bytes.Equal(onDisk, generated) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(onDisk)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
}

// Err joins the collected errors and reports stale files.
func (r *Result) Err() error {
	errs := append([]error(nil), r.Errors...)
	if len(r.Stale) > 0 {
		paths := maps.Keys(r.Stale)
		sort.Strings(paths)
		for _, p := range paths {
			errs = append(errs, fmt.Errorf("%w: %s", ErrStale, p))
		}
	}
	return errors.Join(errs...)
}

// ErrStale is reported in check mode for generated files that are out of date.
var ErrStale = errors.New("generated file is out of date")
