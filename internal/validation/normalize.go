package validation

import (
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding whitespace from every top-level string field
// of the struct pointed to by record and converts it to Unicode NFC, so
// that "Gabriel García" typed with a combining accent compares and sorts
// like the precomposed form. Non-pointer values are left untouched.
func Normalize(record any) {
	rv := reflect.ValueOf(record)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if field.Kind() != reflect.String || !field.CanSet() {
			continue
		}
		field.SetString(NormalizeText(field.String()))
	}
}

// NormalizeText trims s and converts it to NFC.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
