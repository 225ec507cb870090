// Package annotation finds annotated var and const declarations in Go source.
//
// An annotation is an @Name or @Name(key=value, ...) token in a doc comment:
//
//	// MOCK0001_NoPanic reports calls to panic.
//	// @Rule(owner=mock, category=Mock, severity=error)
//	var MOCK0001_NoPanic *rule.Descriptor
package annotation

import (
	"regexp"
	"strings"
)

// annotationRegex matches @Name and @Name(params).
var annotationRegex = regexp.MustCompile(`@(\w+)(?:\(([^)]*)\))?`)

// paramRegex matches key=`value`, key="value" and key=value.
var paramRegex = regexp.MustCompile("(\\w+)\\s*=\\s*`([^`]*)`|(\\w+)\\s*=\\s*\"([^\"]*)\"|(\\w+)\\s*=\\s*([^,\\s]+)")

// Annotation is one parsed annotation.
type Annotation struct {
	Name   string            // e.g. "Rule"
	Params map[string]string // keys are lower case
	Raw    string
}

// Parse returns every annotation found in comment text.
func Parse(comment string) []*Annotation {
	var annotations []*Annotation

	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)

		for _, match := range annotationRegex.FindAllStringSubmatch(line, -1) {
			ann := &Annotation{
				Name:   match[1],
				Params: make(map[string]string),
				Raw:    match[0],
			}
			if match[2] != "" {
				ann.Params = parseParams(match[2])
			}
			annotations = append(annotations, ann)
		}
	}

	return annotations
}

func parseParams(content string) map[string]string {
	params := make(map[string]string)

	for _, match := range paramRegex.FindAllStringSubmatch(content, -1) {
		var key, value string
		switch {
		case match[1] != "":
			key, value = match[1], match[2]
		case match[3] != "":
			key, value = match[3], match[4]
		case match[5] != "":
			key, value = match[5], match[6]
		}
		if key != "" {
			params[strings.ToLower(key)] = value
		}
	}

	return params
}

// Filter keeps the annotations whose name is in names. No names keeps all.
func Filter(annotations []*Annotation, names ...string) []*Annotation {
	if len(names) == 0 {
		return annotations
	}

	var result []*Annotation
	for _, ann := range annotations {
		for _, n := range names {
			if ann.Name == n {
				result = append(result, ann)
				break
			}
		}
	}
	return result
}

// Get returns the first annotation called name, or nil.
func Get(annotations []*Annotation, name string) *Annotation {
	for _, ann := range annotations {
		if ann.Name == name {
			return ann
		}
	}
	return nil
}

// Param returns the value of key.
func (a *Annotation) Param(key string) string {
	return a.Params[strings.ToLower(key)]
}

// ParamOr returns the value of key, or def when it is not set.
func (a *Annotation) ParamOr(key, def string) string {
	if v, ok := a.Params[strings.ToLower(key)]; ok {
		return v
	}
	return def
}

// HasParam reports whether key is set.
func (a *Annotation) HasParam(key string) bool {
	_, ok := a.Params[strings.ToLower(key)]
	return ok
}
