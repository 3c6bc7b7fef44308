package main

import (
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
)

const defaultIssueLimit = 50

var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// buildIssueFilter constructs the GraphQL IssueFilter object. It returns
// nil when no dimension is set so the variable can be left out entirely.
func buildIssueFilter(f IssueFilter) map[string]interface{} {
	filter := map[string]interface{}{}
	if f.TeamID != "" {
		filter["team"] = map[string]interface{}{"id": map[string]interface{}{"eq": f.TeamID}}
	}
	if f.AssigneeID != "" {
		filter["assignee"] = map[string]interface{}{"id": map[string]interface{}{"eq": f.AssigneeID}}
	}
	if f.StatusName != "" {
		filter["state"] = map[string]interface{}{"name": map[string]interface{}{"eq": f.StatusName}}
	}
	if len(filter) == 0 {
		return nil
	}
	return filter
}

// validateDueDate checks the YYYY-MM-DD shape only; calendar validity is
// left to the API.
func validateDueDate(s string) error {
	if !dueDatePattern.MatchString(s) {
		return validationErrorf("Invalid date format. Use YYYY-MM-DD (e.g., 2025-12-31)")
	}
	return nil
}

func parsePriority(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validationErrorf("Invalid priority '%s': expected an integer (0-4)", s)
	}
	return n, nil
}

func parseEstimate(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, validationErrorf("Invalid estimate '%s': expected a number", s)
	}
	return n, nil
}

func parseLimit(flags Flags) (int, error) {
	v, ok, err := flags.Lookup("limit")
	if err != nil || !ok {
		return defaultIssueLimit, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, usageErrorf("Invalid limit '%s': expected a positive integer", v)
	}
	return n, nil
}

// readBody returns the issue description from --body-file or --body, in
// that order of preference. nil means neither was given. A --body-file of
// "-", or one without a value, reads stdin.
func readBody(flags Flags, stdin io.Reader) (*string, error) {
	if fv, ok := flags["body-file"]; ok {
		var (
			data []byte
			err  error
		)
		path := ""
		if fv.Kind != flagBool {
			path = fv.Values[len(fv.Values)-1]
		}
		if path == "" || path == "-" {
			data, err = io.ReadAll(stdin)
			if err != nil {
				return nil, errors.Mark(errors.Wrap(err, "Could not read from stdin"), errValidation)
			}
		} else {
			data, err = os.ReadFile(path)
			if err != nil {
				return nil, errors.Mark(errors.Wrapf(err, "Could not read file: %s", path), errValidation)
			}
		}
		body := string(data)
		return &body, nil
	}

	body, ok, err := flags.Lookup("body")
	if err != nil || !ok {
		return nil, err
	}
	return &body, nil
}

// issueFlags are the issue field flags after shape validation, before any
// reference is resolved against the API.
type issueFlags struct {
	title       string
	description *string
	assignee    string
	labels      []string
	project     string
	parent      string
	priority    *int
	estimate    *float64
	dueDate     string
	status      string
}

// empty reports whether no field-changing flag was given.
func (f *issueFlags) empty() bool {
	return f.title == "" && f.description == nil && f.assignee == "" &&
		len(f.labels) == 0 && f.project == "" && f.parent == "" &&
		f.priority == nil && f.estimate == nil && f.dueDate == "" && f.status == ""
}

// collectIssueFlags reads and validates every issue field flag. It does no
// network I/O, so malformed input is rejected before any request is made.
func collectIssueFlags(flags Flags, stdin io.Reader) (*issueFlags, error) {
	f := &issueFlags{}

	strs := []struct {
		key string
		dst *string
	}{
		{"title", &f.title},
		{"assignee", &f.assignee},
		{"project", &f.project},
		{"parent", &f.parent},
		{"status", &f.status},
		{"due-date", &f.dueDate},
	}
	for _, s := range strs {
		v, _, err := flags.Lookup(s.key)
		if err != nil {
			return nil, err
		}
		*s.dst = v
	}

	if f.dueDate != "" {
		if err := validateDueDate(f.dueDate); err != nil {
			return nil, err
		}
	}

	if v, ok, err := flags.Lookup("priority"); err != nil {
		return nil, err
	} else if ok {
		p, err := parsePriority(v)
		if err != nil {
			return nil, err
		}
		f.priority = &p
	}

	if v, ok, err := flags.Lookup("estimate"); err != nil {
		return nil, err
	} else if ok {
		e, err := parseEstimate(v)
		if err != nil {
			return nil, err
		}
		f.estimate = &e
	}

	f.labels = splitLabelNames(flags.Values("label"))

	body, err := readBody(flags, stdin)
	if err != nil {
		return nil, err
	}
	f.description = body

	return f, nil
}
