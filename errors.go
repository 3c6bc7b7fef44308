package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error classes. Every error that reaches main carries one of these marks.
var (
	errUsage      = errors.New("usage error")
	errNotFound   = errors.New("not found")
	errValidation = errors.New("validation error")
	errAPI        = errors.New("linear api error")
	errAuth       = errors.New("linear authentication error")
	errConfig     = errors.New("configuration error")
)

func usageErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errUsage)
}

func notFoundErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errNotFound)
}

func validationErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errValidation)
}

func helpHint(path string) string {
	if path == "" {
		return "Run 'linear-cli --help' for usage"
	}
	return fmt.Sprintf("Run 'linear-cli %s --help' for usage", path)
}

// withUsageHint attaches the help pointer for path to usage errors that do
// not carry one yet.
func withUsageHint(err error, path string) error {
	if err == nil || !errors.Is(err, errUsage) || len(errors.GetAllHints(err)) > 0 {
		return err
	}
	return errors.WithHint(err, helpHint(path))
}

func isCredentialError(err error) bool {
	if errors.Is(err, errAuth) {
		return true
	}
	return errors.Is(err, errAPI) && strings.Contains(err.Error(), "API key")
}

// reportError prints err and its hints the way every command failure is
// surfaced to the user.
func reportError(w io.Writer, err error) {
	if isCredentialError(err) {
		fmt.Fprint(w, "Error: Invalid LINEAR_API_KEY\n\nCheck your API key is valid: https://linear.app/settings/api\n")
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err.Error())
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "\n%s\n", hint)
	}
}
