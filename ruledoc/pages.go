package ruledoc

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/donutnomad/rulekit/rule"
	"github.com/samber/lo"
)

// IndexFile is the name of the generated index page.
const IndexFile = "README.md"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("ruledoc").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/*.tmpl"),
)

type indexData struct {
	Title      string
	Rules      []View
	Analyzers  []string
	ByAnalyzer map[string][]string
}

// RenderPages writes {ID}.md for every rule of reg and an index into dir.
// It returns the written paths.
func RenderPages(reg *rule.Registry, dir string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create docs dir: %w", err)
	}

	views := Views(reg, opts)
	written := make([]string, 0, len(views)+1)
	for _, v := range views {
		path := filepath.Join(dir, v.ID+".md")
		if err := writeTemplate(path, "rule.md.tmpl", v); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	data := indexData{
		Title:      lo.Ternary(opts.Title != "", opts.Title, "Rules"),
		Rules:      views,
		ByAnalyzer: make(map[string][]string),
	}
	for _, key := range reg.Analyzers() {
		ids := lo.Map(reg.ByAnalyzer(key), func(d *rule.Descriptor, _ int) string { return d.ID })
		data.Analyzers = append(data.Analyzers, string(key))
		data.ByAnalyzer[string(key)] = ids
	}
	path := filepath.Join(dir, IndexFile)
	if err := writeTemplate(path, "index.md.tmpl", data); err != nil {
		return written, err
	}
	return append(written, path), nil
}

// RenderPage renders the page of a single rule.
func RenderPage(reg *rule.Registry, d *rule.Descriptor, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "rule.md.tmpl", newView(reg, d, opts)); err != nil {
		return nil, fmt.Errorf("render %s: %w", d.ID, err)
	}
	return buf.Bytes(), nil
}

func writeTemplate(path, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
