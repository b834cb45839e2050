package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadProgram resolves a program argument: a path to a source file, or
// inline source text. A file is assumed when the argument names an
// existing regular file.
func loadProgram(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("read program file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return arg, nil
}

// parseBinding splits a "name=value" flag and converts the value to
// the most specific host type: int, then float, then bool, falling
// back to string.
func parseBinding(arg string) (string, any, error) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("binding %q must have the form name=value", arg)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return name, n, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return name, f, nil
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return name, b, nil
	}
	return name, raw, nil
}
