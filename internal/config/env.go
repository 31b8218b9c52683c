package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment overrides from a .env file. A missing file is
// not an error. Variables already set in the environment are kept.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to load .env file", err)
	}
	return nil
}
