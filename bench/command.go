package bench

// command.go contains the Command type shared by both invocation strategies.

import (
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Command is a fully built invocation of an external benchmark program.
// Env holds KEY=VALUE entries that are added to the parent environment of
// the spawned process only; the caller's own environment is never modified.
type Command struct {
	Path string
	Args []string
	Env  []string
}

// String renders the command as a shell line (env assignments, program and
// arguments, all shell-escaped). It is meant for logs and dry runs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	for _, kv := range c.Env {
		key, value, _ := strings.Cut(kv, "=")
		parts = append(parts, key+"="+shellescape.Quote(value))
	}
	parts = append(parts, shellescape.Quote(c.Path))
	for _, arg := range c.Args {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}

// Lookup returns the value of key in the command environment.
func (c Command) Lookup(key string) (string, bool) {
	for _, kv := range c.Env {
		k, v, _ := strings.Cut(kv, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// WithEnv returns a copy of the command with overrides applied. Existing keys
// are replaced in place, new keys are appended in sorted order.
func (c Command) WithEnv(overrides map[string]string) Command {
	if len(overrides) == 0 {
		return c
	}

	env := make([]string, 0, len(c.Env)+len(overrides))
	seen := make(map[string]bool, len(overrides))
	for _, kv := range c.Env {
		key, _, _ := strings.Cut(kv, "=")
		if value, ok := overrides[key]; ok {
			env = append(env, key+"="+value)
			seen[key] = true
			continue
		}
		env = append(env, kv)
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		env = append(env, key+"="+overrides[key])
	}

	c.Env = env
	return c
}
