// Package envfile reads KEY=VALUE files into the process environment.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads KEY=VALUE lines from r. Blank lines and # comments are
// skipped, an "export " prefix is accepted, and one pair of matching quotes
// around a value is removed. Unquoted values end at " #". Later duplicates
// win.
func Parse(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := parseLine(line); ok {
			vars[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// Load applies the files in order. A variable already present in the
// environment, or set by an earlier file, is left alone. Missing files are
// skipped.
func Load(paths ...string) error {
	for _, path := range paths {
		vars, err := readFile(path)
		if err != nil {
			return err
		}
		for key, value := range vars {
			if _, set := os.LookupEnv(key); !set {
				_ = os.Setenv(key, value)
			}
		}
	}
	return nil
}

func readFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	vars, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

func parseLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		return key, value[1 : n-1], true
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true
}
