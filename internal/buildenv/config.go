// SPDX-License-Identifier: MPL-2.0

package buildenv

import (
	"iter"
	"slices"
)

// Config is an ordered string-to-string environment. Keys are unique and
// keep the position of their first insertion.
type Config struct {
	keys   []string
	values map[string]string
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{values: make(map[string]string)}
}

// Set stores value under key. Overwriting keeps the key's original position.
func (c *Config) Set(key, value string) {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is set.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (c *Config) Keys() []string {
	return slices.Clone(c.keys)
}

// Len returns the number of entries.
func (c *Config) Len() int {
	return len(c.keys)
}

// All iterates over the entries in insertion order.
func (c *Config) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range c.keys {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}

// Map returns a copy of the entries as a plain map.
func (c *Config) Map() map[string]string {
	m := make(map[string]string, len(c.keys))
	for k, v := range c.All() {
		m[k] = v
	}
	return m
}

// Environ returns the entries as "KEY=value" strings in insertion order,
// the form expected by exec.Cmd.Env.
func (c *Config) Environ() []string {
	env := make([]string, 0, len(c.keys))
	for k, v := range c.All() {
		env = append(env, k+"="+v)
	}
	return env
}
