package registry

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// promptOnce reads a persisted single-line file, prompting for and writing
// the value on first use.
func (r *Registry) promptOnce(file, prompt string) (string, error) {
	path := filepath.Join(r.dataDir, file)
	if raw, err := os.ReadFile(path); err == nil {
		if v := strings.TrimSpace(string(raw)); v != "" {
			return v, nil
		}
	}
	fmt.Fprintf(r.Out, "%s: ", prompt)
	scanner := bufio.NewScanner(r.In)
	if !scanner.Scan() {
		return "", fmt.Errorf("read %s: %w", prompt, scanner.Err())
	}
	v := strings.TrimSpace(scanner.Text())
	if v == "" {
		return "", fmt.Errorf("empty %s", prompt)
	}
	if err := os.MkdirAll(r.dataDir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(v+"\n"), 0644); err != nil {
		return "", err
	}
	return v, nil
}

// Username returns the player's FIO username, prompting and persisting it on
// first use.
func (r *Registry) Username() (string, error) {
	v, err := r.get("username", func() (interface{}, error) {
		return r.promptOnce("username.txt", "FIO username")
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// PreferredExchange returns the player's home exchange code, prompting and
// persisting it on first use.
func (r *Registry) PreferredExchange() (string, error) {
	v, err := r.get("preferred-exchange", func() (interface{}, error) {
		code, err := r.promptOnce("preferred_exchange.txt", "preferred exchange")
		if err != nil {
			return nil, err
		}
		return strings.ToUpper(code), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
