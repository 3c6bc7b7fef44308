package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const dateLayout = "2006-01-02"

// writeJSON prints data exactly as the API returned it, indented.
func writeJSON(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return errors.Wrap(err, "failed to format JSON")
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// writeValueJSON encodes a value built locally.
func writeValueJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecords prints a list title followed by one line per record.
func printRecords(w io.Writer, title string, lines []string) {
	fmt.Fprintf(w, "%s\n\n", title)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func formatUserLine(u User) string {
	return fmt.Sprintf("#%s\t%s\t%s", u.ID, u.Name, u.Email)
}

func formatTeamLine(t Team) string {
	return fmt.Sprintf("#%s\t%s\t%s", t.ID, t.Name, t.Key)
}

func formatProjectLine(p Project) string {
	status := p.State
	if p.Status != nil && p.Status.Name != "" {
		status = p.Status.Name
	}
	return fmt.Sprintf("#%s\t%s\t%s", p.ID, p.Name, status)
}

func formatIssueLine(i IssueSummary) string {
	state := ""
	if i.State != nil {
		state = i.State.Name
	}
	assignee := "Unassigned"
	if i.Assignee != nil && i.Assignee.Name != "" {
		assignee = i.Assignee.Name
	}
	return fmt.Sprintf("#%s\t%s\t%s\t%s", i.Identifier, i.Title, state, assignee)
}

func priorityLabel(priority int) string {
	switch priority {
	case 1:
		return "Urgent (P0)"
	case 2:
		return "High (P1)"
	case 3:
		return "Medium (P2)"
	case 4:
		return "Low (P3)"
	default:
		return "None"
	}
}

// printIssueDetails prints the labeled issue view. Parent, project,
// estimate and due date lines appear only when set.
func printIssueDetails(w io.Writer, issue *Issue) {
	status := "Unknown"
	if issue.State != nil && issue.State.Name != "" {
		status = issue.State.Name
	}
	assignee := "Unassigned"
	if issue.Assignee != nil {
		assignee = fmt.Sprintf("%s (%s)", issue.Assignee.Name, issue.Assignee.Email)
	}
	labels := make([]string, len(issue.Labels.Nodes))
	for i, l := range issue.Labels.Nodes {
		labels[i] = l.Name
	}
	labelText := strings.Join(labels, ", ")
	if labelText == "" {
		labelText = "None"
	}

	fmt.Fprintf(w, "Issue: #%s\n\n", issue.Identifier)
	fmt.Fprintf(w, "Title:\t\t%s\n", issue.Title)
	fmt.Fprintf(w, "Status:\t\t%s\n", status)
	fmt.Fprintf(w, "Assignee:\t%s\n", assignee)
	fmt.Fprintf(w, "Team:\t\t%s (%s)\n", issue.Team.Name, issue.Team.Key)
	fmt.Fprintf(w, "Priority:\t%s\n", priorityLabel(issue.Priority))
	fmt.Fprintf(w, "Labels:\t\t%s\n", labelText)
	if issue.Parent != nil {
		fmt.Fprintf(w, "Parent:\t\t#%s - %s\n", issue.Parent.Identifier, issue.Parent.Title)
	}
	if issue.Project != nil {
		fmt.Fprintf(w, "Project:\t%s\n", issue.Project.Name)
	}
	if issue.Estimate != nil && *issue.Estimate != 0 {
		fmt.Fprintf(w, "Estimate:\t%s points\n", strconv.FormatFloat(*issue.Estimate, 'f', -1, 64))
	}
	if issue.DueDate != "" {
		fmt.Fprintf(w, "Due Date:\t%s\n", issue.DueDate)
	}
	fmt.Fprintf(w, "Created:\t%s\n", issue.CreatedAt.UTC().Format(dateLayout))
	fmt.Fprintf(w, "Updated:\t%s\n", issue.UpdatedAt.UTC().Format(dateLayout))

	if issue.Description != "" {
		fmt.Fprintf(w, "\nDescription:\n%s\n", issue.Description)
	}

	if len(issue.Comments.Nodes) > 0 {
		fmt.Fprintf(w, "\nComments:\n")
		for _, c := range issue.Comments.Nodes {
			author := ""
			if c.User != nil {
				author = c.User.Name
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n", c.CreatedAt.UTC().Format(dateLayout), author, c.Body)
		}
	}
}
