package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoContractsDir indicates a missing contracts directory setting
	ErrNoContractsDir = errors.New("no contracts directory")

	// ErrNoOutputDir indicates a missing output directory setting
	ErrNoOutputDir = errors.New("no output directory")

	// ErrInvalidBuilder indicates an unsupported sphinx builder
	ErrInvalidBuilder = errors.New("invalid sphinx builder")

	// ErrInvalidPort indicates an out-of-range serve port
	ErrInvalidPort = errors.New("invalid serve port")

	// ErrInvalidDebounce indicates an invalid watch debounce setting
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidMaxResults indicates an invalid search result limit
	ErrInvalidMaxResults = errors.New("invalid search max results")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	// Validate directory settings
	if strings.TrimSpace(cfg.Contracts) == "" {
		errs = append(errs, fmt.Errorf("%w: contracts is required", ErrNoContractsDir))
	}
	if strings.TrimSpace(cfg.Output) == "" {
		errs = append(errs, fmt.Errorf("%w: output is required", ErrNoOutputDir))
	}

	// Include/exclude patterns can be empty - validation is lenient here
	// Discovery compiles the globs and reports bad patterns itself

	// Validate sphinx configuration
	if err := validateSphinx(&cfg.Sphinx); err != nil {
		errs = append(errs, err)
	}

	// Validate serve configuration
	if err := validateServe(&cfg.Serve); err != nil {
		errs = append(errs, err)
	}

	// Validate watch configuration
	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	// Validate search configuration
	if err := validateSearch(&cfg.Search); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateSphinx(cfg *SphinxConfig) error {
	// Only the HTML-producing builders make sense here: the serve
	// command expects browsable output
	validBuilders := map[string]bool{
		"html":       true,
		"dirhtml":    true,
		"singlehtml": true,
	}

	if !validBuilders[cfg.Builder] {
		return fmt.Errorf("%w: %s (valid: html, dirhtml, singlehtml)", ErrInvalidBuilder, cfg.Builder)
	}

	return nil
}

func validateServe(cfg *ServeConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidPort, cfg.Port)
	}

	return nil
}

func validateWatch(cfg *WatchConfig) error {
	// Zero disables debouncing, negative makes no sense
	if cfg.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.DebounceMs)
	}

	return nil
}

func validateSearch(cfg *SearchConfig) error {
	if cfg.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be positive, got %d", ErrInvalidMaxResults, cfg.MaxResults)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
