package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadDotenv sets variables from a .env file that are not already defined.
// A missing file is ignored and existing variables are never overridden.
func LoadDotenv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open dotenv: %w", err)
	}
	defer f.Close()

	vars, err := ParseDotenv(f)
	if err != nil {
		return fmt.Errorf("parse dotenv %s: %w", path, err)
	}
	for _, kv := range vars {
		if _, exists := os.LookupEnv(kv[0]); !exists {
			os.Setenv(kv[0], kv[1])
		}
	}
	return nil
}

// ParseDotenv reads KEY=VALUE lines in file order. Blank lines, # comments
// and lines without "=" are skipped; an "export " prefix is accepted.
// Unquoted values lose a trailing " #" comment, quoted values are kept
// verbatim between their quotes.
func ParseDotenv(r io.Reader) ([][2]string, error) {
	var out [][2]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out = append(out, [2]string{key, dotenvValue(strings.TrimSpace(value))})
	}
	return out, scanner.Err()
}

func dotenvValue(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	if i := strings.Index(s, " #"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
