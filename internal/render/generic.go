package render

import (
	"fmt"
	"sort"
	"strings"
)

// renderGeneric is the catch-all: it must render any validated payload
// without crashing, including kinds that did not exist when this code was
// written. It pretty-prints scalar fields and summarizes nested ones.
func renderGeneric(r Result) Card {
	title := "Result"
	if t := r.Type(); t != "" {
		title = "Result · " + t
	}

	pairs := make([][2]string, 0, r.Len())
	for _, key := range r.Fields() {
		pairs = append(pairs, [2]string{key, genericValue(r.Value(key))})
	}

	return Card{
		Kind:  KindGeneric,
		Title: title,
		Body:  joinSections(errorLine(r), kvLines(pairs)),
	}
}

func genericValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return truncate(t, 60)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case []any:
		return fmt.Sprintf("[%d items]", len(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > 4 {
			keys = keys[:4]
		}
		return "{" + strings.Join(keys, ", ") + "}"
	default:
		return fmt.Sprintf("%v", t)
	}
}
