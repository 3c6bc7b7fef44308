package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

func runIssueList(ctx context.Context, inv *invocation) error {
	limit, err := parseLimit(inv.cmd.Flags)
	if err != nil {
		return err
	}
	var filter IssueFilter
	var assignee string
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"team", &filter.TeamID},
		{"assignee", &assignee},
		{"status", &filter.StatusName},
	} {
		if *f.dst, _, err = inv.cmd.Flags.Lookup(f.key); err != nil {
			return err
		}
	}

	api, err := inv.connect()
	if err != nil {
		return err
	}
	if assignee != "" {
		if filter.AssigneeID, err = inv.resolver.assignee(ctx, assignee); err != nil {
			return err
		}
	}

	raw, err := api.Issues(ctx, filter, limit)
	if err != nil {
		return err
	}
	if inv.json {
		return writeJSON(inv.out, raw)
	}

	var issues []IssueSummary
	if err := decodeData(raw, &issues); err != nil {
		return err
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = formatIssueLine(issue)
	}
	printRecords(inv.out, "Issues", lines)
	return nil
}

func runIssueView(ctx context.Context, inv *invocation) error {
	api, err := inv.connect()
	if err != nil {
		return err
	}
	issue, err := resolveIssue(ctx, api, inv.cmd.Args[0], inv.log)
	if err != nil {
		return err
	}
	if inv.json {
		return writeJSON(inv.out, issue.Raw)
	}
	printIssueDetails(inv.out, &issue.Issue)
	return nil
}

func runIssueCreate(ctx context.Context, inv *invocation) error {
	title := strings.Join(inv.cmd.Args, " ")
	teamID, ok, err := inv.cmd.Flags.Lookup("team")
	if err != nil {
		return err
	}
	if !ok {
		return usageErrorf("--team flag is required")
	}
	f, err := collectIssueFlags(inv.cmd.Flags, inv.stdin)
	if err != nil {
		return err
	}

	if _, err := inv.connect(); err != nil {
		return err
	}
	fields, err := inv.resolver.fields(ctx, teamID, f)
	if err != nil {
		return err
	}

	input := IssueInput{TeamID: teamID, Title: title, issueFields: fields}
	result, err := inv.api.CreateIssue(ctx, input)
	if err != nil {
		return err
	}
	if !result.Success || result.Entity == nil {
		return errors.Mark(errors.New("Failed to create issue"), errAPI)
	}
	if inv.json {
		return writeJSON(inv.out, result.Entity)
	}

	var created Issue
	if err := json.Unmarshal(result.Entity, &created); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to decode created issue"), errAPI)
	}
	fmt.Fprintf(inv.out, "✓ Issue created: #%s\n", created.Identifier)
	fmt.Fprintf(inv.out, "  Title: %s\n", created.Title)
	fmt.Fprintf(inv.out, "  URL: %s\n", created.URL)
	return nil
}

func runIssueUpdate(ctx context.Context, inv *invocation) error {
	f, err := collectIssueFlags(inv.cmd.Flags, inv.stdin)
	if err != nil {
		return err
	}
	if f.empty() {
		return usageErrorf("No updates specified")
	}

	api, err := inv.connect()
	if err != nil {
		return err
	}
	issue, err := resolveIssue(ctx, api, inv.cmd.Args[0], inv.log)
	if err != nil {
		return err
	}
	fields, err := inv.resolver.fields(ctx, issue.Team.ID, f)
	if err != nil {
		return err
	}

	result, err := api.UpdateIssue(ctx, issue.ID, IssueUpdate{Title: f.title, issueFields: fields})
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.Mark(errors.Newf("Failed to update issue #%s", issue.Identifier), errAPI)
	}
	if inv.json {
		return writeJSON(inv.out, result.Entity)
	}
	fmt.Fprintf(inv.out, "✓ Issue #%s updated\n", issue.Identifier)
	return nil
}

// runIssueDelete moves the issue to the trash. A response with success
// false is a failure even though the request itself went through.
func runIssueDelete(ctx context.Context, inv *invocation) error {
	api, err := inv.connect()
	if err != nil {
		return err
	}
	issue, err := resolveIssue(ctx, api, inv.cmd.Args[0], inv.log)
	if err != nil {
		return err
	}

	result, err := api.DeleteIssue(ctx, issue.ID)
	if err != nil {
		return err
	}
	if inv.json {
		if err := writeValueJSON(inv.out, map[string]bool{"success": result.Success}); err != nil {
			return err
		}
	}
	if !result.Success {
		return errors.Mark(errors.Newf("Failed to delete issue #%s", issue.Identifier), errAPI)
	}
	if !inv.json {
		fmt.Fprintf(inv.out, "✓ Issue #%s deleted (moved to trash)\n", issue.Identifier)
	}
	return nil
}
