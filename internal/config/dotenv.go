package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files with priority: .env.local > .env.
// godotenv.Load does not overwrite already-set variables, so OS env wins.
// Returns the files actually loaded.
func LoadDotEnv(dir string) []string {
	candidates := []string{".env.local", ".env"}
	var loaded []string
	for _, f := range candidates {
		path := f
		if dir != "" {
			path = dir + string(os.PathSeparator) + f
		}
		if _, err := os.Stat(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
