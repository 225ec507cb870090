package rulegen

import (
	"fmt"

	"github.com/donutnomad/gg"
	"github.com/donutnomad/rulekit/rule"
)

const rulePkgPath = "github.com/donutnomad/rulekit/rule"

// Header is the first line of every generated file.
const Header = "Code generated by rulekit. DO NOT EDIT."

// Render builds the init function that assigns every rule of pkg.
func Render(pkg *Package) (*gg.Generator, error) {
	if pkg.Family == nil {
		return nil, fmt.Errorf("package %s has no rule family", pkg.Name)
	}

	gen := gg.New()
	gen.SetHeader(Header)
	gen.SetPackage(pkg.Name)

	var rulePkg *gg.PackageRef
	severityArg := func(r *Rule) string {
		if !r.HasSeverity {
			return ""
		}
		if rulePkg == nil {
			rulePkg = gen.P(rulePkgPath)
		}
		return fmt.Sprintf(", %s", rulePkg.Dot(severityConst(r.Severity)))
	}

	body := make([]any, 0, len(pkg.Rules))
	family := pkg.Family.Var
	for _, r := range pkg.Rules {
		if r.Owner == "" {
			body = append(body, gg.S("%s = %s.New(%d, %s%s)",
				r.Var, family, r.Number, gg.Lit(r.Category), severityArg(r)))
			continue
		}
		body = append(body, gg.S("%s = %s.Declare(%s, %d, %s%s)",
			r.Var, family, gg.Lit(string(r.Owner)), r.Number, gg.Lit(r.Category), severityArg(r)))
	}

	gen.Body().NewFunction("init").AddBody(body...)
	return gen, nil
}

func severityConst(s rule.Severity) string {
	switch s {
	case rule.SeverityHidden:
		return "SeverityHidden"
	case rule.SeverityInfo:
		return "SeverityInfo"
	case rule.SeverityWarning:
		return "SeverityWarning"
	default:
		return "SeverityError"
	}
}
