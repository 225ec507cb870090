package rule

import "errors"

// Configuration errors. They describe mistakes in rule declarations and are
// reported when a descriptor is created or a family is built.
var (
	ErrDuplicateID  = errors.New("duplicate rule id")
	ErrNoSeverity   = errors.New("no severity and no default for category")
	ErrNumberRange  = errors.New("rule number out of range")
	ErrSeverityArgs = errors.New("more than one severity given")
	ErrInvalidID    = errors.New("invalid rule id")
	ErrNoOwner      = errors.New("empty analyzer key")
	ErrPrefix       = errors.New("invalid rule prefix")
)
