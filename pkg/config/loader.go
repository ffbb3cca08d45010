package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads layered YAML configuration into out.
//
// base.yaml is loaded first, then <env>.yaml overrides it field by field.
// ${VAR} placeholders are substituted from secrets.env (if present) and the
// process environment before decoding. env is typically "local" or
// "production"; configDir defaults to "config".
func Load(env, configDir string, out any) error {
	if configDir == "" {
		configDir = "config"
	}

	secrets := map[string]string{}
	secretsFile := filepath.Join(configDir, "secrets.env")
	if _, err := os.Stat(secretsFile); err == nil {
		secrets, err = loadEnvFile(secretsFile)
		if err != nil {
			return fmt.Errorf("failed to load secrets.env: %w", err)
		}
	}

	if err := decodeYAMLFile(filepath.Join(configDir, "base.yaml"), secrets, out); err != nil {
		return fmt.Errorf("failed to load base.yaml: %w", err)
	}

	if env != "" && env != "base" {
		envFile := filepath.Join(configDir, fmt.Sprintf("%s.yaml", env))
		if _, err := os.Stat(envFile); err == nil {
			if err := decodeYAMLFile(envFile, secrets, out); err != nil {
				return fmt.Errorf("failed to load %s.yaml: %w", env, err)
			}
		}
	}

	return nil
}

// decodeYAMLFile decodes a YAML file into out after placeholder substitution.
// Decoding into an already-populated struct only touches keys present in the
// document, which is what gives us the base/env layering.
func decodeYAMLFile(path string, secrets map[string]string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal([]byte(substitute(string(data), secrets)), out)
}

// loadEnvFile parses a KEY=VALUE file, ignoring blanks and # comments.
func loadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			value = strings.Trim(value, `"`)
			value = strings.Trim(value, `'`)
			env[key] = value
		}
	}
	return env, nil
}

// substitute replaces ${VAR} placeholders from secrets first, then the
// process environment.
func substitute(s string, secrets map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	for key, value := range secrets {
		s = strings.ReplaceAll(s, fmt.Sprintf("${%s}", key), value)
	}
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}
