package config

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const dotenvSearchDepth = 6

// LoadDotEnv looks for a .env file in dir or its parents and exports every key
// not already present in the process environment.
func LoadDotEnv(logger *slog.Logger, dir string) {
	path := findDotEnv(dir)
	if path == "" {
		logger.Debug(".env not found", "from", dir)
		return
	}
	file, err := os.Open(path)
	if err != nil {
		logger.Warn("open .env failed", "path", path, "err", err)
		return
	}
	defer file.Close()

	vars, err := parseDotEnv(file)
	if err != nil {
		logger.Warn("parse .env failed", "path", path, "err", err)
		return
	}
	for key, value := range vars {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			logger.Warn("set env from .env failed", "key", key)
		}
	}
	logger.Info("loaded env file", "path", path, "keys", len(vars))
}

func findDotEnv(dir string) string {
	for i := 0; i < dotenvSearchDepth; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func parseDotEnv(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars, scanner.Err()
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	if (value[0] == '"' && value[len(value)-1] == '"') ||
		(value[0] == '\'' && value[len(value)-1] == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
