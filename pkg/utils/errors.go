// Package utils provides shared helpers for config loading and error
// wrapping, used by pkg/config.
package utils

import "fmt"

// Wrap adds context to an error message, e.g. wrapping a pool-lookup
// failure with the operation that triggered it. It returns nil if err is
// nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
