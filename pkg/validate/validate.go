// Package validate checks request structs against `validate` struct tags.
//
// Rules (comma-separated):
//
//	required            field must not be zero/empty
//	nullable            if empty (or a nil pointer), skip the remaining rules
//	email               valid email address
//	uuid                valid UUID
//	alpha, alpha_num    letters / letters and digits only
//	numeric, integer    parseable number / whole number
//	min=N, max=N        string: char length | number: value
//	gt=N, gte=N         number bounds
//	lt=N, lte=N
//	between=lo,hi       number or string length, inclusive
//	in=a,b,c            one of the listed values
//	regex=pattern       must match (no commas in pattern)
//
// Pointer fields are dereferenced before rules run, so `*int` works with
// `nullable,between=0,5`.
//
//	type NewLotInput struct {
//	    FlowerName    string `json:"flower_name"    validate:"required,in=chamomile,tulip,rose,protea"`
//	    FlowersAmount int    `json:"flowers_amount" validate:"gte=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)
		value := rv.Field(i)

		if isEmpty(value) && hasRule(rules, "nullable") {
			continue
		}
		if value.Kind() == reflect.Ptr && !value.IsNil() {
			value = value.Elem()
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := check(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// ─── Rules ────────────────────────────────────────────────────────────────────

func check(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")
	raw := fmt.Sprintf("%v", v.Interface())

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "uuid":
		if !uuidRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid UUID.", field)
		}
	case "alpha":
		if !allRunes(raw, unicode.IsLetter) {
			return fmt.Sprintf("The %s field must contain only letters.", field)
		}
	case "alpha_num":
		if !allRunes(raw, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
			return fmt.Sprintf("The %s field must contain only letters and numbers.", field)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
	case "min":
		if isNumericKind(v) && toFloat(v) < parseFloat(param) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		if !isNumericKind(v) && runeLen(raw) < parseFloat(param) {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		if isNumericKind(v) && toFloat(v) > parseFloat(param) {
			return fmt.Sprintf("The %s must not be greater than %s.", field, param)
		}
		if !isNumericKind(v) && runeLen(raw) > parseFloat(param) {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gt":
		if toFloat(v) <= parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if toFloat(v) < parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lt":
		if toFloat(v) >= parseFloat(param) {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if toFloat(v) > parseFloat(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return ""
		}
		n := runeLen(raw)
		if isNumericKind(v) {
			n = toFloat(v)
		}
		if n < parseFloat(lo) || n > parseFloat(hi) {
			return fmt.Sprintf("The %s must be between %s and %s.", field, lo, hi)
		}
	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "regex":
		re, err := regexp.Compile(param)
		if err != nil {
			return fmt.Sprintf("The %s has an invalid validation pattern.", field)
		}
		if !re.MatchString(raw) {
			return fmt.Sprintf("The %s format is invalid.", field)
		}
	}

	return ""
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	uuidRE  = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false // false is a value, not an absence
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return parseFloat(fmt.Sprintf("%v", v.Interface()))
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func runeLen(s string) float64 { return float64(len([]rune(s))) }

func allRunes(s string, ok func(rune) bool) bool {
	for _, r := range s {
		if !ok(r) {
			return false
		}
	}
	return true
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

// splitRules splits a tag on commas, except inside the value list of an
// in= or between= rule: "required,in=a,b,max=3" → [required in=a,b max=3].
func splitRules(tag string) []string {
	var rules []string
	for _, part := range strings.Split(tag, ",") {
		n := len(rules)
		if n > 0 && !startsRule(part) && continuesList(rules[n-1]) {
			rules[n-1] += "," + part
			continue
		}
		rules = append(rules, part)
	}
	return rules
}

var ruleNames = []string{
	"required", "nullable", "email", "uuid", "alpha", "alpha_num", "numeric",
	"integer", "min=", "max=", "gt=", "gte=", "lt=", "lte=", "between=",
	"in=", "regex=",
}

func startsRule(s string) bool {
	for _, name := range ruleNames {
		if s == name || (strings.HasSuffix(name, "=") && strings.HasPrefix(s, name)) {
			return true
		}
	}
	return false
}

func continuesList(rule string) bool {
	return strings.HasPrefix(rule, "in=") || strings.HasPrefix(rule, "between=")
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
