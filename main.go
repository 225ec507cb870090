package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/donutnomad/rulekit/internal/config"
	"github.com/donutnomad/rulekit/rule"
	"github.com/donutnomad/rulekit/ruledoc"
	"github.com/donutnomad/rulekit/rulegen"
	"golang.org/x/text/language"
)

var (
	verbose    = flag.Bool("v", false, "verbose output")
	help       = flag.Bool("h", false, "show help")
	configPath = flag.String("config", "", "config file (default: "+config.FileName+" found from the working directory)")
	check      = flag.Bool("check", false, "gen: report stale generated files instead of writing them")
	asJSON     = flag.Bool("json", false, "list: print the JSON catalog")
	lang       = flag.String("lang", "", "list, docs: language of the rule texts (default: language from the config)")
	docsOut    = flag.String("out", "", "docs: output directory (default: docs.output from the config)")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	args := flag.Args()
	var err error
	if len(args) == 0 {
		err = runGen(nil)
	} else {
		switch args[0] {
		case "gen":
			err = runGen(subArgs(args))
		case "list":
			err = runList(subArgs(args))
		case "docs":
			err = runDocs(subArgs(args))
		case "dev":
			err = runDev(subArgs(args))
		default:
			err = runGen(args)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// subArgs parses the flags that follow a command name, so that both
// "rulekit -check gen" and "rulekit gen -check" work.
func subArgs(args []string) []string {
	_ = flag.CommandLine.Parse(args[1:]) // exits on error
	return flag.Args()
}

func patternsOrDefault(args []string) []string {
	if len(args) == 0 {
		return []string{"./..."}
	}
	return args
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.Load(*configPath)
	}
	return config.Discover(".")
}

func newGenerator(cfg *config.Config) *rulegen.Generator {
	return rulegen.New(rulegen.Options{
		Output:  cfg.Generate.Output,
		Check:   *check,
		Verbose: *verbose,
	})
}

func runGen(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := newGenerator(cfg).Run(context.Background(), patternsOrDefault(args)...)
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
	for path, diff := range result.Stale {
		fmt.Printf("%s is out of date:\n%s\n", path, diff)
	}
	if len(result.Files) > 0 || *verbose {
		fmt.Printf("%d families, %d files in %v\n", len(result.Packages), len(result.Files), time.Since(start).Round(time.Millisecond))
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d declarations have errors", len(result.Errors))
	}
	return result.Err()
}

// scanned is a registry assembled from source declarations.
type scanned struct {
	registry *rule.Registry
	names    map[string]string
}

// buildRegistry scans patterns and assembles one registry from every family
// found, configured by cfg.
func buildRegistry(ctx context.Context, cfg *config.Config, patterns []string) (*scanned, error) {
	result, err := rulegen.New(rulegen.Options{Verbose: *verbose}).Scan(ctx, patterns...)
	if err != nil {
		return nil, err
	}
	if err := errors.Join(result.Errors...); err != nil {
		return nil, err
	}

	store, err := cfg.LoadResources()
	if err != nil {
		return nil, err
	}
	rc, err := cfg.RuleConfig("", store)
	if err != nil {
		return nil, err
	}

	b := rule.NewBuilder()
	names := make(map[string]string)
	for _, pkg := range result.Packages {
		reg, err := pkg.Build(rc)
		if err != nil {
			return nil, err
		}
		for _, key := range reg.Analyzers() {
			for _, d := range reg.ByAnalyzer(key) {
				if err := b.Add(key, d); err != nil {
					return nil, fmt.Errorf("package %s: %w", pkg.Dir, err)
				}
			}
		}
		for id, name := range pkg.Names() {
			names[id] = name
		}
	}
	return &scanned{registry: b.Build(), names: names}, nil
}

func docOptions(cfg *config.Config, names map[string]string) (ruledoc.Options, error) {
	tag, err := cfg.Tag()
	if err != nil {
		return ruledoc.Options{}, err
	}
	if *lang != "" {
		if tag, err = language.Parse(*lang); err != nil {
			return ruledoc.Options{}, fmt.Errorf("-lang: %w", err)
		}
	}
	return ruledoc.Options{Language: tag, Names: names}, nil
}

func runList(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := buildRegistry(context.Background(), cfg, patternsOrDefault(args))
	if err != nil {
		return err
	}
	opts, err := docOptions(cfg, s.names)
	if err != nil {
		return err
	}

	if *asJSON {
		return ruledoc.WriteCatalog(os.Stdout, s.registry, opts)
	}
	return ruledoc.WriteTable(os.Stdout, s.registry, opts)
}

func runDocs(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := buildRegistry(context.Background(), cfg, patternsOrDefault(args))
	if err != nil {
		return err
	}
	opts, err := docOptions(cfg, s.names)
	if err != nil {
		return err
	}

	dir := cfg.Path(cfg.Docs.Output)
	if *docsOut != "" {
		dir = *docsOut
	}
	written, err := ruledoc.RenderPages(s.registry, dir, opts)
	if err != nil {
		return err
	}
	if *verbose {
		for _, path := range written {
			fmt.Println(path)
		}
	}
	fmt.Printf("%d rules documented in %s\n", s.registry.Len(), dir)
	return nil
}

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `rulekit - rule declaration tooling

Usage:
  rulekit [options] [paths...]
  rulekit gen [options] [paths...]
  rulekit list [options] [paths...]
  rulekit docs [options] [paths...]
  rulekit dev [options] [paths...]

Commands:
  gen     generate rule registration code (default)
  list    print the declared rules
  docs    write one markdown page per rule
  dev     watch for changes and regenerate

Paths:
  Go package patterns such as ./... (default), ./rules/... or ./rules

Options:
`)
	flag.PrintDefaults()

	_, _ = fmt.Fprintf(os.Stderr, `
Annotations:
  @%s(prefix=MOCK)
      marks the *rule.Family variable of a package
  @%s(owner=mock, category=Mock, severity=error)
      marks a *rule.Descriptor variable named after its id, e.g. MOCK0001_NoPanic;
      without owner the rule is a helper, without severity the category default applies

Examples:
  rulekit                       generate for ./...
  rulekit gen -check ./...      fail when generated files are stale
  rulekit list -json ./rules    print the rule catalog
  rulekit docs -lang zh ./...   write Chinese rule pages
  rulekit -v dev ./...          regenerate on change
`, rulegen.AnnotationFamily, rulegen.AnnotationRule)
}
