package ruledoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/donutnomad/rulekit/rule"
	"github.com/mattn/go-runewidth"
)

// maxTitleWidth truncates long titles in the table.
const maxTitleWidth = 60

// WriteTable prints an aligned listing of reg. Widths are measured in
// terminal cells so CJK titles line up.
func WriteTable(w io.Writer, reg *rule.Registry, opts Options) error {
	header := []string{"ID", "SEVERITY", "CATEGORY", "ANALYZER", "TITLE"}
	rows := [][]string{header}
	for _, v := range Views(reg, opts) {
		rows = append(rows, []string{
			v.ID,
			v.Severity,
			v.Category,
			v.Analyzer,
			runewidth.Truncate(v.Title, maxTitleWidth, "..."),
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				line.WriteString(cell)
				break
			}
			line.WriteString(runewidth.FillRight(cell, widths[i]))
			line.WriteString("  ")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// Catalog is the JSON document written by WriteCatalog.
type Catalog struct {
	Rules []View `json:"rules"`
}

// WriteCatalog writes reg as indented JSON.
func WriteCatalog(w io.Writer, reg *rule.Registry, opts Options) error {
	data, err := sonic.ConfigStd.MarshalIndent(Catalog{Rules: Views(reg, opts)}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadCatalog decodes a catalog written by WriteCatalog.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := sonic.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &c, nil
}
