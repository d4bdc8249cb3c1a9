package records

import (
	"log/slog"
	"strconv"
	"strings"
)

// Fields holds the raw field map of a fetched record. The store returns
// dynamically typed values: rollup metrics arrive as numbers or
// currency-formatted strings, and lookup fields arrive as lists even for
// conceptually single values. Each accessor normalizes one field class.
type Fields map[string]any

// Number coerces a rollup field to a float. Strings are cleaned of currency
// formatting ("$1,234.50") before parsing. Missing or unparseable values
// degrade to 0 with a warning rather than failing the pipeline.
func (f Fields) Number(name string, log *slog.Logger) float64 {
	v, ok := f[name]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(n, "$", ""), ",", ""))
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			if log != nil {
				log.Warn("could not parse numeric field", slog.String("field", name), slog.String("value", n))
			}
			return 0
		}
		return parsed
	default:
		if log != nil {
			log.Warn("unexpected type for numeric field", slog.String("field", name))
		}
		return 0
	}
}

// Text coerces a text or lookup field to a single string: a plain string is
// returned as-is, a list collapses to its first non-empty element, and
// anything else falls back to def.
func (f Fields) Text(name, def string) string {
	switch v := f[name].(type) {
	case string:
		if v != "" {
			return v
		}
	case []any:
		for _, el := range v {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	case []string:
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return def
}

// TextList returns a lookup field as a list of strings. A plain string
// becomes a single-element list; absent fields yield nil.
func (f Fields) TextList(name string) []string {
	switch v := f[name].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, el := range v {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
