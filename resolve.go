package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type issueFinder interface {
	IssueByID(ctx context.Context, id string) (json.RawMessage, error)
	IssueByNumber(ctx context.Context, teamKey string, number int) (json.RawMessage, error)
}

type labelLister interface {
	TeamLabels(ctx context.Context, teamID string) ([]Label, error)
}

type stateLister interface {
	TeamStates(ctx context.Context, teamID string) ([]WorkflowState, error)
}

type viewerLookup interface {
	Viewer(ctx context.Context) (*User, error)
}

// splitIssueKey splits a compound key such as "eng-123" into its upper-cased
// team key and sequence number. ok is false for anything that is not a
// compound key, including canonical UUIDs.
func splitIssueKey(ref string) (teamKey, number string, ok bool) {
	if !strings.Contains(ref, "-") {
		return "", "", false
	}
	if _, err := uuid.Parse(ref); err == nil {
		return "", "", false
	}
	teamKey, number, _ = strings.Cut(ref, "-")
	return strings.ToUpper(teamKey), number, true
}

// resolveIssue turns a compound key or an opaque id into the issue record.
// Lookup failures of any kind are reported as not found.
func resolveIssue(ctx context.Context, api issueFinder, ref string, log zerolog.Logger) (*ResolvedIssue, error) {
	raw, err := lookupIssue(ctx, api, ref)
	if err != nil {
		log.Debug().Err(err).Str("ref", ref).Msg("issue lookup failed")
		return nil, notFoundErrorf("Issue not found: %s", ref)
	}
	if raw == nil {
		return nil, notFoundErrorf("Issue not found: %s", ref)
	}

	issue := &ResolvedIssue{Raw: raw}
	if err := json.Unmarshal(raw, &issue.Issue); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to decode issue %s", ref), errAPI)
	}
	log.Debug().Str("ref", ref).Str("id", issue.ID).Str("identifier", issue.Identifier).Msg("issue resolved")
	return issue, nil
}

func lookupIssue(ctx context.Context, api issueFinder, ref string) (json.RawMessage, error) {
	teamKey, num, ok := splitIssueKey(ref)
	if !ok {
		return api.IssueByID(ctx, ref)
	}
	number, err := strconv.Atoi(num)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid issue number in %s", ref)
	}
	return api.IssueByNumber(ctx, teamKey, number)
}

// splitLabelNames flattens repeated and comma-separated --label values.
func splitLabelNames(values []string) []string {
	var names []string
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// resolveLabels maps label names to ids using the team's label set. Names
// match case-insensitively and duplicates collapse to their first
// occurrence. If any name is unknown nothing is returned.
func resolveLabels(ctx context.Context, api labelLister, teamID string, names []string) ([]string, error) {
	available, err := api.TeamLabels(ctx, teamID)
	if err != nil {
		return nil, err
	}

	var (
		ids       []string
		notFound  []string
		seenNames = map[string]bool{}
		seenIDs   = map[string]bool{}
	)
	for _, name := range names {
		key := strings.ToLower(name)
		if seenNames[key] {
			continue
		}
		seenNames[key] = true

		label, ok := findLabel(available, name)
		if !ok {
			notFound = append(notFound, name)
			continue
		}
		if !seenIDs[label.ID] {
			seenIDs[label.ID] = true
			ids = append(ids, label.ID)
		}
	}

	if len(notFound) > 0 {
		err := notFoundErrorf("Label(s) not found: %s", strings.Join(notFound, ", "))
		return nil, errors.WithHint(err, availableLabelsHint(available))
	}
	return ids, nil
}

func findLabel(labels []Label, name string) (Label, bool) {
	for _, l := range labels {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Label{}, false
}

func availableLabelsHint(labels []Label) string {
	var b strings.Builder
	b.WriteString("Available labels for this team:")
	if len(labels) == 0 {
		b.WriteString("\n  (no labels available)")
	}
	for _, l := range labels {
		fmt.Fprintf(&b, "\n  - %s", l.Name)
	}
	return b.String()
}

// resolveState finds the team's workflow state with the given name,
// ignoring case.
func resolveState(ctx context.Context, api stateLister, teamID, name string) (string, error) {
	states, err := api.TeamStates(ctx, teamID)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(states))
	for _, s := range states {
		if strings.EqualFold(s.Name, name) {
			return s.ID, nil
		}
		names = append(names, s.Name)
	}
	err = notFoundErrorf("Status '%s' not found", name)
	return "", errors.WithHintf(err, "Available statuses: %s", strings.Join(names, ", "))
}

// resolver carries per-invocation lookups so that repeated references to
// the viewer cost a single request.
type resolver struct {
	api      linearAPI
	log      zerolog.Logger
	viewerID string
}

func newResolver(api linearAPI, log zerolog.Logger) *resolver {
	return &resolver{api: api, log: log}
}

// assignee resolves an --assignee value. "@me" becomes the authenticated
// user's id; anything else is taken as a user id.
func (r *resolver) assignee(ctx context.Context, input string) (string, error) {
	if input != "@me" {
		return input, nil
	}
	if r.viewerID != "" {
		return r.viewerID, nil
	}
	viewer, err := r.api.Viewer(ctx)
	if err != nil {
		return "", err
	}
	r.viewerID = viewer.ID
	r.log.Debug().Str("viewer", viewer.ID).Msg("resolved @me")
	return r.viewerID, nil
}

// parent resolves a --parent reference to the parent issue id.
func (r *resolver) parent(ctx context.Context, ref string) (string, error) {
	issue, err := resolveIssue(ctx, r.api, ref, r.log)
	if err != nil {
		return "", notFoundErrorf("Parent issue not found: %s", ref)
	}
	return issue.ID, nil
}

// fields resolves every reference in f against teamID and returns the
// payload fields. It runs before the mutation so a failed resolution never
// leaves a partial change behind.
func (r *resolver) fields(ctx context.Context, teamID string, f *issueFlags) (issueFields, error) {
	out := issueFields{
		Description: f.description,
		ProjectID:   f.project,
		Priority:    f.priority,
		Estimate:    f.estimate,
		DueDate:     f.dueDate,
	}

	if f.assignee != "" {
		id, err := r.assignee(ctx, f.assignee)
		if err != nil {
			return issueFields{}, err
		}
		out.AssigneeID = id
	}
	if len(f.labels) > 0 {
		ids, err := resolveLabels(ctx, r.api, teamID, f.labels)
		if err != nil {
			return issueFields{}, err
		}
		out.LabelIDs = ids
	}
	if f.parent != "" {
		id, err := r.parent(ctx, f.parent)
		if err != nil {
			return issueFields{}, err
		}
		out.ParentID = id
	}
	if f.status != "" {
		id, err := resolveState(ctx, r.api, teamID, f.status)
		if err != nil {
			return issueFields{}, err
		}
		out.StateID = id
	}
	return out, nil
}
