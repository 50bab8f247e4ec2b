package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret value may come from.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is an inline value from configuration or environment.
	Value string
	// File points to a file holding the value. It takes precedence over Value.
	File string
}

// Load resolves the secret, preferring File over Value. The result is trimmed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file == "" {
		secret := strings.TrimSpace(src.Value)
		if secret == "" {
			return "", fmt.Errorf("%s is not configured", name)
		}
		return secret, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	return secret, nil
}
