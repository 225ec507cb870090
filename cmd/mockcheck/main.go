// Command mockcheck runs the mock analyzer.
//
//	mockcheck ./...
//	mockcheck -severity=hidden -disable=MOCK1002 ./...
package main

import (
	"github.com/donutnomad/rulekit/internal/mockrules"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(mockrules.Analyzer().Analyzer)
}
