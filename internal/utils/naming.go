package utils

import "strings"

// initialisms are folded to title case before splitting so that HTTPServer
// becomes http_server rather than h_t_t_p_server.
var initialisms = []string{
	"API", "ASCII", "AST", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP",
	"HTTPS", "ID", "IP", "JSON", "QPS", "RAM", "RPC", "SQL", "SSH", "TLS",
	"TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "YAML",
}

var initialismReplacer = newInitialismReplacer()

func newInitialismReplacer() *strings.Replacer {
	args := make([]string, 0, len(initialisms)*2)
	for _, word := range initialisms {
		args = append(args, word, strings.ToUpper(word[:1])+strings.ToLower(word[1:]))
	}
	return strings.NewReplacer(args...)
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ToSnakeCase turns a Go identifier into snake case: NoPanic becomes
// no_panic, EmptyFuncBody becomes empty_func_body.
func ToSnakeCase(name string) string {
	if name == "" {
		return ""
	}
	value := initialismReplacer.Replace(name)

	var buf strings.Builder
	last := len(value) - 1
	prevUpper := false
	curUpper := isUpper(value[0])

	for i := 0; i < last; i++ {
		c := value[i]
		nextUpper := isUpper(value[i+1])
		if curUpper {
			runStarts := !prevUpper || !(nextUpper || isDigit(value[i+1]))
			if runStarts && i > 0 && value[i-1] != '_' && value[i+1] != '_' {
				buf.WriteByte('_')
			}
			buf.WriteByte(c + 'a' - 'A')
		} else {
			buf.WriteByte(c)
		}
		prevUpper = curUpper
		curUpper = nextUpper
	}

	c := value[last]
	if curUpper {
		if !prevUpper && last > 0 {
			buf.WriteByte('_')
		}
		buf.WriteByte(c + 'a' - 'A')
	} else {
		buf.WriteByte(c)
	}
	return buf.String()
}
