package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// buildAddCommentMutation returns a mutation to add a comment to an issue
func buildAddCommentMutation() string {
	return `
mutation AddComment($issueId: String!, $body: String!) {
  commentCreate(
    input: {
      issueId: $issueId
      body: $body
    }
  ) {
    success
    comment {
      id
      body
      createdAt
      user {
        name
      }
      issue {
        identifier
      }
      url
    }
  }
}
`
}

// CreateComment adds a plain-text comment to an issue.
func (c *Client) CreateComment(ctx context.Context, issueID, body string) (*MutationResult, error) {
	variables := map[string]interface{}{
		"issueId": issueID,
		"body":    body,
	}
	return c.mutate(ctx, buildAddCommentMutation(), variables, "commentCreate", "comment")
}

func runIssueComment(ctx context.Context, inv *invocation) error {
	text := strings.Join(inv.cmd.Args[1:], " ")
	if strings.TrimSpace(text) == "" {
		return usageErrorf("Comment text cannot be empty")
	}

	api, err := inv.connect()
	if err != nil {
		return err
	}
	issue, err := resolveIssue(ctx, api, inv.cmd.Args[0], inv.log)
	if err != nil {
		return err
	}

	result, err := api.CreateComment(ctx, issue.ID, text)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.Mark(errors.Newf("Failed to add comment to #%s", issue.Identifier), errAPI)
	}

	if inv.json {
		return writeJSON(inv.out, result.Entity)
	}
	fmt.Fprintf(inv.out, "✓ Comment added to #%s\n", issue.Identifier)
	return nil
}
