package rule

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/donutnomad/rulekit/resource"
)

// MaxNumber is the largest rule number that fits the four digit id suffix.
const MaxNumber = 9999

const numberDigits = 4

var (
	idRegex     = regexp.MustCompile(`^[A-Za-z]+[0-9]{4}$`)
	prefixRegex = regexp.MustCompile(`^[A-Za-z]+$`)
)

// AnalyzerKey identifies the analyzer that owns a rule. By convention it is the
// analysis.Analyzer name.
type AnalyzerKey string

// Descriptor describes one diagnostic rule. Descriptors are created by a
// Config or Family and must not be modified afterwards.
type Descriptor struct {
	ID               string
	Title            resource.Localizable
	MessageFormat    resource.Localizable
	Description      resource.Localizable
	Category         string
	DefaultSeverity  Severity
	EnabledByDefault bool
	HelpLinkURI      string
}

// Message renders the message format with args. Descriptors without a message
// format use their title, then their id.
func (d *Descriptor) Message(args ...any) string {
	switch {
	case !d.MessageFormat.IsZero():
		if len(args) == 0 {
			return d.MessageFormat.String()
		}
		return fmt.Sprintf(d.MessageFormat.String(), args...)
	case !d.Title.IsZero():
		return d.Title.String()
	}
	return d.ID
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s(%s, %s)", d.ID, d.Category, d.DefaultSeverity)
}

// FormatID renders prefix and number as a rule id, e.g. MOCK0001.
func FormatID(prefix string, number int) (string, error) {
	if !prefixRegex.MatchString(prefix) {
		return "", fmt.Errorf("%w: %q", ErrPrefix, prefix)
	}
	if number < 0 || number > MaxNumber {
		return "", fmt.Errorf("%w: %s%d (0..%d)", ErrNumberRange, prefix, number, MaxNumber)
	}
	return fmt.Sprintf("%s%0*d", prefix, numberDigits, number), nil
}

// ValidID reports whether id has the {letters}{4 digits} shape.
func ValidID(id string) bool {
	return idRegex.MatchString(id)
}

// IDLength is the length of every id built with prefix.
func IDLength(prefix string) int {
	return len(prefix) + numberDigits
}

// DeriveID takes the rule id from the start of a declaration name, e.g.
// MOCK0001 from MOCK0001_NoPanic. The first IDLength(prefix) characters must
// be prefix followed by four digits.
func DeriveID(prefix, name string) (id string, number int, err error) {
	n := IDLength(prefix)
	if len(name) < n {
		return "", 0, fmt.Errorf("%w: %q is shorter than %d characters", ErrInvalidID, name, n)
	}
	id = name[:n]
	if id[:len(prefix)] != prefix || !ValidID(id) {
		return "", 0, fmt.Errorf("%w: %q does not start with %s followed by %d digits", ErrInvalidID, name, prefix, numberDigits)
	}
	number, err = strconv.Atoi(id[len(prefix):])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q: %v", ErrInvalidID, name, err)
	}
	return id, number, nil
}
