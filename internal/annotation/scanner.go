package annotation

import (
	"bufio"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Scanner finds annotated declarations in two phases: a quick text match over
// comment lines picks candidate files, which are then parsed with go/parser.
// Both phases run on a pool of workers.
type Scanner struct {
	workers int
	verbose bool

	// annotation names to look for; empty means any
	filter []string
}

// Option configures a Scanner.
type Option func(*Scanner)

func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithVerbose(v bool) Option {
	return func(s *Scanner) {
		s.verbose = v
	}
}

func WithFilter(names ...string) Option {
	return func(s *Scanner) {
		s.filter = names
	}
}

func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan scans the given patterns: ./..., ./pkg/..., ./pkg, a single .go file
// or absolute forms of those.
func (s *Scanner) Scan(ctx context.Context, patterns ...string) (*Result, error) {
	files, err := CollectFiles(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return &Result{}, nil
	}

	matched := s.quickMatch(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.verbose {
		fmt.Printf("[annotation] %d of %d files contain annotations\n", len(matched), len(files))
	}
	if len(matched) == 0 {
		return &Result{}, nil
	}

	return s.parseFiles(ctx, matched)
}

// runPool feeds files to fn on s.workers goroutines and returns the results.
func runPool[T any](ctx context.Context, workers int, files []string, fn func(string) T) []T {
	fileCh := make(chan string)
	resultCh := make(chan T, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range fileCh {
				resultCh <- fn(file)
			}
		}()
	}

	go func() {
		defer close(fileCh)
		for _, file := range files {
			select {
			case <-ctx.Done():
				return
			case fileCh <- file:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]T, 0, len(files))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}

func (s *Scanner) quickMatch(ctx context.Context, files []string) []string {
	type matchResult struct {
		file    string
		matched bool
	}

	results := runPool(ctx, s.workers, files, func(file string) matchResult {
		matched, err := s.QuickMatchFile(file)
		if err != nil && s.verbose {
			fmt.Printf("[annotation] skip %s: %v\n", file, err)
		}
		return matchResult{file: file, matched: matched}
	})

	var matched []string
	for _, r := range results {
		if r.matched {
			matched = append(matched, r.file)
		}
	}
	return matched
}

// QuickMatchFile reports whether a comment line of filePath holds an
// annotation accepted by the filter. It does not parse Go.
func (s *Scanner) QuickMatchFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "/*") {
			continue
		}
		for _, match := range annotationRegex.FindAllStringSubmatch(trimmed, -1) {
			if len(s.filter) == 0 {
				return true, nil
			}
			for _, name := range s.filter {
				if match[1] == name {
					return true, nil
				}
			}
		}
	}

	return false, scanner.Err()
}

func (s *Scanner) parseFiles(ctx context.Context, files []string) (*Result, error) {
	type parseResult struct {
		targets []*Target
		err     error
	}

	results := runPool(ctx, s.workers, files, func(file string) parseResult {
		targets, err := s.ParseFile(file)
		return parseResult{targets: targets, err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		result.Targets = append(result.Targets, r.targets...)
	}
	result.sort()
	return result, nil
}

// ParseFile returns the annotated var and const declarations of one file.
func (s *Scanner) ParseFile(filePath string) ([]*Target, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}

	var targets []*Target
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		var kind Kind
		switch gen.Tok {
		case token.VAR:
			kind = KindVar
		case token.CONST:
			kind = KindConst
		default:
			continue
		}
		targets = append(targets, s.parseValueDecl(fset, filePath, file.Name.Name, gen, kind)...)
	}
	return targets, nil
}

func (s *Scanner) parseValueDecl(fset *token.FileSet, filePath, packageName string, decl *ast.GenDecl, kind Kind) []*Target {
	var declDoc string
	if decl.Doc != nil {
		declDoc = decl.Doc.Text()
	}

	var targets []*Target
	for _, spec := range decl.Specs {
		valueSpec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		doc := declDoc
		if valueSpec.Doc != nil {
			doc = valueSpec.Doc.Text()
		}
		annotations := Filter(Parse(doc), s.filter...)
		if len(annotations) == 0 {
			continue
		}

		for _, name := range valueSpec.Names {
			if name.Name == "_" {
				continue
			}
			targets = append(targets, &Target{
				Kind:        kind,
				Name:        name.Name,
				PackageName: packageName,
				FilePath:    filePath,
				Position:    fset.Position(name.Pos()),
				Type:        exprToString(valueSpec.Type),
				HasValue:    len(valueSpec.Values) > 0,
				Annotations: annotations,
			})
		}
	}
	return targets
}

// CollectFiles expands patterns into Go source files, skipping tests,
// generated files and hidden, vendor or testdata directories below the
// pattern root.
func CollectFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		if recursive {
			pattern = strings.TrimSuffix(pattern, "/...")
		}
		if pattern == "" {
			pattern = "."
		}

		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if strings.HasSuffix(absPath, ".go") && !seen[absPath] {
				seen[absPath] = true
				files = append(files, absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == absPath {
					return nil
				}
				name := d.Name()
				if !recursive || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata" {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") && !IsGeneratedFile(path) && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsGeneratedFile reports whether path is a test file or generator output.
func IsGeneratedFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "_test.go") ||
		(strings.HasPrefix(base, "zz_") && strings.HasSuffix(base, "_generated.go"))
}

func exprToString(expr ast.Expr) string {
	switch e := expr.(type) {
	case nil:
		return ""
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return "*" + exprToString(e.X)
	case *ast.SelectorExpr:
		return exprToString(e.X) + "." + e.Sel.Name
	case *ast.IndexExpr:
		return exprToString(e.X) + "[" + exprToString(e.Index) + "]"
	case *ast.ArrayType:
		return "[]" + exprToString(e.Elt)
	default:
		return ""
	}
}
