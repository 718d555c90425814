package paramvalidation

import (
	"reflect"
	"strings"
	"unicode"
)

// ExternalKey converts a declared camelCase field name to the snake_case
// key used to look the parameter up in a Source. Runs of upper-case letters
// are treated as one word, so "userID" becomes "user_id" and "HTTPServer"
// becomes "http_server". Names already in snake_case are returned unchanged.
func ExternalKey(name string) string {
	if name == "" {
		return ""
	}

	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && wordBoundary(runes, i) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '.' || r == ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wordBoundary reports whether the upper-case rune at i starts a new word.
func wordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if prev == '_' || prev == '-' || prev == '.' || prev == ' ' {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// Last capital of an acronym followed by a lower-case word: "HTTPServer".
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// declaredName is the field's name as seen by callers and error reports:
// the json tag name when set, otherwise the Go name in lower camelCase.
func declaredName(sf reflect.StructField) string {
	if tag := strings.Split(sf.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
		return tag
	}
	return lowerCamel(sf.Name)
}

// lowerCamel lowers the leading upper-case run of s, keeping the capital
// that starts the next word: "UserName" -> "userName", "URLPath" -> "urlPath".
func lowerCamel(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n > 1 && n < len(runes):
		n--
	}
	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
