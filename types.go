package main

import (
	"encoding/json"
	"time"
)

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Active      bool   `json:"active"`
}

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	State  string `json:"state"`
	Status *struct {
		Name string `json:"name"`
	} `json:"status"`
}

type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// IssueSummary is the shape returned by issue list.
type IssueSummary struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	State      *struct {
		Name string `json:"name"`
	} `json:"state"`
	Assignee *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"assignee"`
}

// Issue is a fully preloaded issue record, as returned by issue lookups.
type Issue struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Estimate    *float64  `json:"estimate"`
	DueDate     string    `json:"dueDate"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	State       *struct {
		Name string `json:"name"`
	} `json:"state"`
	Assignee *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"assignee"`
	Team struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Key  string `json:"key"`
	} `json:"team"`
	Parent *struct {
		Identifier string `json:"identifier"`
		Title      string `json:"title"`
	} `json:"parent"`
	Project *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
	Labels struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"labels"`
	Comments struct {
		Nodes []struct {
			Body      string    `json:"body"`
			CreatedAt time.Time `json:"createdAt"`
			User      *struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"nodes"`
	} `json:"comments"`
}

// ResolvedIssue is an issue reference after resolution. Raw keeps the
// record exactly as the API returned it.
type ResolvedIssue struct {
	Issue
	Raw json.RawMessage
}

// MutationResult is the payload of a mutation: the success flag and the
// affected entity, untouched.
type MutationResult struct {
	Success bool
	Entity  json.RawMessage
}

// IssueFilter holds the issue list filter dimensions. Empty fields are left
// out of the query.
type IssueFilter struct {
	TeamID     string
	AssigneeID string
	StatusName string
}

// issueFields are the fields shared by create and update payloads. Only
// fields set from flags are serialized.
type issueFields struct {
	Description *string  `json:"description,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	ParentID    string   `json:"parentId,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	StateID     string   `json:"stateId,omitempty"`
}

// IssueInput is the issueCreate payload.
type IssueInput struct {
	TeamID string `json:"teamId"`
	Title  string `json:"title"`
	issueFields
}

// IssueUpdate is the issueUpdate payload.
type IssueUpdate struct {
	Title string `json:"title,omitempty"`
	issueFields
}
