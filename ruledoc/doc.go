// Package ruledoc renders documentation for a rule registry: one markdown
// page per rule, which is what a descriptor's help link points at, plus an
// index, a plain text table and a JSON catalog.
package ruledoc
