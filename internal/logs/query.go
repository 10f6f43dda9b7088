package logs

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// FieldFilter keeps JSON lines where the JSONPath selects a value whose text
// equals want. An empty want keeps lines where the path selects anything.
// A bare field name is treated as "$.<name>". Non-JSON lines are dropped.
func FieldFilter(path, want string) (Filter, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty field path")
	}
	if !strings.HasPrefix(path, "$") {
		path = "$." + path
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid field path %q: %w", path, err)
	}
	return func(line string) bool {
		if !strings.HasPrefix(strings.TrimSpace(line), "{") {
			return false
		}
		doc, err := oj.ParseString(line)
		if err != nil {
			return false
		}
		for _, v := range expr.Get(doc) {
			if want == "" || fmt.Sprint(v) == want {
				return true
			}
		}
		return false
	}, nil
}

// ParseWhere builds a FieldFilter from "path=value" or a bare "path".
func ParseWhere(clause string) (Filter, error) {
	path, want, _ := strings.Cut(clause, "=")
	return FieldFilter(path, strings.TrimSpace(want))
}

// All keeps lines accepted by every non-nil filter.
func All(filters ...Filter) Filter {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(line string) bool {
		for _, f := range active {
			if !f(line) {
				return false
			}
		}
		return true
	}
}
