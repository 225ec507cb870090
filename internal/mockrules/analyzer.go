package mockrules

import (
	"go/ast"
	"go/types"
	"strings"
	"sync"

	"github.com/donutnomad/rulekit/analyzer"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer returns the mock analyzer. It is built on first use because the
// rules are declared by an init function, after package variables are set.
var Analyzer = sync.OnceValue(func() *analyzer.Analyzer {
	return analyzer.New(Rules, analyzer.Options{
		Name:     "mock",
		Doc:      "reports panic calls, empty function bodies and underscores in function names",
		URL:      DocsBaseURI,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run:      run,
	})
})

func run(pass *analyzer.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.CallExpr)(nil),
	}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.FuncDecl:
			name := n.Name.Name
			if name != "_" && strings.Contains(name, "_") {
				pass.Report(MOCK1002_Underscore, n.Name, name)
			}
			if n.Body != nil && len(n.Body.List) == 0 {
				pass.Report(MOCK0002_EmptyBody, n, name)
			}
		case *ast.CallExpr:
			if isBuiltin(pass.TypesInfo, n.Fun, "panic") {
				pass.Report(MOCK0001_NoPanic, n)
			}
		}
	})
	return nil, nil
}

func isBuiltin(info *types.Info, fun ast.Expr, name string) bool {
	id, ok := ast.Unparen(fun).(*ast.Ident)
	if !ok || id.Name != name {
		return false
	}
	_, ok = info.Uses[id].(*types.Builtin)
	return ok
}
