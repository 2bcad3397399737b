// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DotEnvFileName is the project environment file read next to the config.
const DotEnvFileName = ".env"

// ErrDotEnvSyntax is the sentinel error wrapped by DotEnvSyntaxError.
var ErrDotEnvSyntax = errors.New("invalid .env syntax")

type (
	// DotEnv holds the variables of a dotenv file.
	DotEnv map[string]string

	// DotEnvSyntaxError reports a malformed line of a dotenv file.
	DotEnvSyntaxError struct {
		File   string
		Line   int
		Reason string
	}
)

// Error implements the error interface.
func (e *DotEnvSyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

// Unwrap returns ErrDotEnvSyntax for errors.Is() compatibility.
func (e *DotEnvSyntaxError) Unwrap() error { return ErrDotEnvSyntax }

// LoadDotEnv reads the dotenv file at path. A missing file yields an empty
// DotEnv.
func LoadDotEnv(path string) (DotEnv, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DotEnv{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseDotEnv(content, path)
}

// ParseDotEnv parses dotenv content. Supported syntax:
//   - blank lines and lines starting with # are skipped
//   - KEY=value, with an optional leading "export "
//   - unquoted values end at " #"
//   - "double quoted" values understand \n, \r, \t, \\, \" and \$
//   - 'single quoted' values are taken literally
//
// Later assignments to the same key win. filename is used in errors.
func ParseDotEnv(content []byte, filename string) (DotEnv, error) {
	env := DotEnv{}
	for i, raw := range strings.Split(string(content), "\n") {
		key, value, ok, reason := parseDotEnvLine(raw)
		if reason != "" {
			return nil, &DotEnvSyntaxError{File: filename, Line: i + 1, Reason: reason}
		}
		if ok {
			env[key] = value
		}
	}
	return env, nil
}

// Lookup returns the value of key.
func (d DotEnv) Lookup(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

func parseDotEnvLine(raw string) (key, value string, ok bool, reason string) {
	line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false, ""
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, rest, found := strings.Cut(line, "=")
	if !found {
		return "", "", false, "missing '='"
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false, "empty variable name"
	}

	value, reason = unquoteDotEnvValue(strings.TrimSpace(rest))
	if reason != "" {
		return "", "", false, reason
	}
	return key, value, true, ""
}

func unquoteDotEnvValue(value string) (string, string) {
	switch {
	case value == "":
		return "", ""
	case value[0] == '"':
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", "unterminated double quote"
		}
		return unescapeDotEnv(value[1 : len(value)-1]), ""
	case value[0] == '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", "unterminated single quote"
		}
		return value[1 : len(value)-1], ""
	}

	if before, _, found := strings.Cut(value, " #"); found {
		value = strings.TrimSpace(before)
	}
	return value, ""
}

var dotEnvEscapes = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'"':  '"',
	'$':  '$',
}

func unescapeDotEnv(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' || i+1 == len(value) {
			b.WriteByte(c)
			continue
		}
		i++
		if r, known := dotEnvEscapes[value[i]]; known {
			b.WriteByte(r)
		} else {
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}
