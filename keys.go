package tether

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagProperty is the struct tag carrying an explicit binding key.
const TagProperty = "property"

// accessorPrefixes are stripped from accessor names when deriving keys.
// At most one prefix is removed.
var accessorPrefixes = []string{"get", "set", "has", "Get", "Set", "Has", "is", "Is"}

// FieldKey derives the binding key for a struct field: the trimmed override
// when it is non-blank, otherwise the raw field name.
func FieldKey(name, override string) string {
	if key := strings.TrimSpace(override); key != "" {
		return key
	}
	return name
}

// AccessorKey derives the binding key for an accessor method: the trimmed
// override when it is non-blank, otherwise the method name with one
// get/set/has/is prefix removed and the first rune lower-cased. Remainders
// shorter than two runes are returned as they are.
//
//	AccessorKey("getUserName", "") == "userName"
//	AccessorKey("SetPort", "")     == "port"
//	AccessorKey("getA", "")        == "A"
func AccessorKey(name, override string) string {
	if key := strings.TrimSpace(override); key != "" {
		return key
	}
	for _, prefix := range accessorPrefixes {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	if utf8.RuneCountInString(name) < 2 {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// setterName returns the conventional setter for a field name: a leading
// "is" is dropped and the first rune upper-cased, so both isActive and
// Active resolve to SetActive. The prefix only counts when an upper-case
// rune follows it (Issuer keeps its name).
func setterName(field string) string {
	for _, prefix := range []string{"is", "Is"} {
		rest, ok := strings.CutPrefix(field, prefix)
		if !ok {
			continue
		}
		if next, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(next) {
			field = rest
		}
		break
	}
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return ""
	}
	return "Set" + string(unicode.ToUpper(r)) + field[size:]
}

// getterName returns the Go getter for a setter name: SetPort -> Port.
func getterName(setter string) string {
	return strings.TrimPrefix(setter, "Set")
}
