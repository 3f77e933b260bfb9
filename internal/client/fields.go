package client

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseFields turns key=value arguments into note fields. Repeating a key
// collects its values into a list, the same way form posts do.
func ParseFields(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid field %q, want key=value", arg)
		}
		switch prev := fields[key].(type) {
		case nil:
			fields[key] = value
		case string:
			fields[key] = []any{prev, value}
		case []any:
			fields[key] = append(prev, value)
		}
	}
	return fields, nil
}
