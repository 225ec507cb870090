package rules

import "example.com/rule"

// @RuleFamily(prefix=MOCK)
var Rules = rule.NewFamily(rule.Config{Prefix: "MOCK"})

var (
	// MOCK0001_NoPanic reports calls to panic.
	// @Rule(owner=mock, category=Mock, severity=error)
	MOCK0001_NoPanic *rule.Descriptor

	// not a rule
	helper = 1

	// @Rule(owner=mock, category="Mapped Things")
	MOCK1002_Underscore, _ *rule.Descriptor
)

// @Rule(owner=consts)
const MOCK0003_Const = 3
