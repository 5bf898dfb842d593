package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility of the configured source. The configPath
// argument specifies the config file location to validate (empty string
// skips the config file check). This calls Validate() first for basic
// structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateSource(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateSource checks that a file source points at something readable.
func (c *Config) validateSource() error {
	src := c.Source
	switch src.ResolvedKind() {
	case SourceSample:
		return nil
	case SourceSQLite:
		return criterio.Run("source.path", src.Path, isRegularFile)
	}

	if !src.IsGlob() {
		return criterio.Run("source.path", src.Path, isRegularFile)
	}

	if !doublestar.ValidatePattern(filepath.ToSlash(src.Path)) {
		return criterio.NewFieldErrors("source.path", fmt.Errorf("invalid glob pattern %q", src.Path))
	}

	matches, err := doublestar.FilepathGlob(src.Path)
	if err != nil {
		return criterio.NewFieldErrors("source.path", fmt.Errorf("glob %q: %w", src.Path, err))
	}
	if len(matches) == 0 {
		return criterio.NewFieldErrors("source.path", fmt.Errorf("glob %q matches no files", src.Path))
	}

	var errs criterio.FieldErrorsBuilder
	for _, m := range matches {
		if err := isRegularFile(m); err != nil {
			errs = errs.Append(fmt.Sprintf("source.path[%s]", m), err)
		}
	}
	return errs.ToError()
}

// isRegularFile validates that a path exists and is not a directory.
func isRegularFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}
