package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// fakeAPI is an in-memory linearAPI that records every call.
type fakeAPI struct {
	calls []string

	viewer   *User
	users    json.RawMessage
	teams    json.RawMessage
	projects json.RawMessage
	issues   json.RawMessage

	// byID and byKey hold issue records keyed by opaque id and "KEY-n".
	byID  map[string]json.RawMessage
	byKey map[string]json.RawMessage

	labels map[string][]Label
	states map[string][]WorkflowState

	lookupErr error

	createResult  *MutationResult
	updateResult  *MutationResult
	deleteResult  *MutationResult
	commentResult *MutationResult

	lastFilter  IssueFilter
	lastLimit   int
	lastCreate  *IssueInput
	lastUpdate  *IssueUpdate
	lastUpdated string
	lastComment string
}

func (f *fakeAPI) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeAPI) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) mutated() bool {
	for _, c := range f.calls {
		switch c {
		case "CreateIssue", "UpdateIssue", "DeleteIssue", "CreateComment":
			return true
		}
	}
	return false
}

func (f *fakeAPI) Viewer(ctx context.Context) (*User, error) {
	f.record("Viewer")
	if f.viewer == nil {
		return nil, errors.Mark(errors.New("no viewer"), errAPI)
	}
	return f.viewer, nil
}

func (f *fakeAPI) Users(ctx context.Context) (json.RawMessage, error) {
	f.record("Users")
	return f.users, nil
}

func (f *fakeAPI) Teams(ctx context.Context) (json.RawMessage, error) {
	f.record("Teams")
	return f.teams, nil
}

func (f *fakeAPI) Projects(ctx context.Context) (json.RawMessage, error) {
	f.record("Projects")
	return f.projects, nil
}

func (f *fakeAPI) Issues(ctx context.Context, filter IssueFilter, limit int) (json.RawMessage, error) {
	f.record("Issues")
	f.lastFilter, f.lastLimit = filter, limit
	return f.issues, nil
}

func (f *fakeAPI) IssueByID(ctx context.Context, id string) (json.RawMessage, error) {
	f.record("IssueByID")
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.byID[id], nil
}

func (f *fakeAPI) IssueByNumber(ctx context.Context, teamKey string, number int) (json.RawMessage, error) {
	f.record("IssueByNumber")
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.byKey[teamKey+"-"+strconv.Itoa(number)], nil
}

func (f *fakeAPI) TeamLabels(ctx context.Context, teamID string) ([]Label, error) {
	f.record("TeamLabels")
	return f.labels[teamID], nil
}

func (f *fakeAPI) TeamStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	f.record("TeamStates")
	return f.states[teamID], nil
}

func (f *fakeAPI) CreateIssue(ctx context.Context, input IssueInput) (*MutationResult, error) {
	f.record("CreateIssue")
	f.lastCreate = &input
	return f.createResult, nil
}

func (f *fakeAPI) UpdateIssue(ctx context.Context, id string, input IssueUpdate) (*MutationResult, error) {
	f.record("UpdateIssue")
	f.lastUpdated, f.lastUpdate = id, &input
	return f.updateResult, nil
}

func (f *fakeAPI) DeleteIssue(ctx context.Context, id string) (*MutationResult, error) {
	f.record("DeleteIssue")
	return f.deleteResult, nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, issueID, body string) (*MutationResult, error) {
	f.record("CreateComment")
	f.lastComment = body
	return f.commentResult, nil
}

const eng123 = `{"id":"issue-uuid-1","identifier":"ENG-123","title":"Fix login","priority":2,` +
	`"createdAt":"2025-01-15T10:00:00.000Z","updatedAt":"2025-02-01T14:30:00.000Z",` +
	`"state":{"name":"Todo"},"assignee":null,"team":{"id":"team-eng","name":"Engineering","key":"ENG"},` +
	`"parent":null,"project":null,"labels":{"nodes":[]},"comments":{"nodes":[]}}`

const eng7 = `{"id":"issue-uuid-7","identifier":"ENG-7","title":"Epic","team":{"id":"team-eng","name":"Engineering","key":"ENG"},` +
	`"labels":{"nodes":[]},"comments":{"nodes":[]}}`

// newFakeAPI returns a fake with one team, a few labels and states, and
// ENG-123 / ENG-7 available.
func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		viewer: &User{ID: "user-me", Name: "Me"},
		byID: map[string]json.RawMessage{
			"issue-uuid-1": json.RawMessage(eng123),
			"issue-uuid-7": json.RawMessage(eng7),
		},
		byKey: map[string]json.RawMessage{
			"ENG-123": json.RawMessage(eng123),
			"ENG-7":   json.RawMessage(eng7),
		},
		labels: map[string][]Label{
			"team-eng": {{ID: "lbl-bug", Name: "Bug"}, {ID: "lbl-feat", Name: "Feature"}, {ID: "lbl-p0", Name: "p0"}},
		},
		states: map[string][]WorkflowState{
			"team-eng": {{ID: "st-todo", Name: "Todo"}, {ID: "st-prog", Name: "In Progress"}, {ID: "st-done", Name: "Done"}},
		},
		createResult:  &MutationResult{Success: true, Entity: json.RawMessage(`{"id":"new-id","identifier":"ENG-124","title":"New","url":"https://linear.app/x/issue/ENG-124"}`)},
		updateResult:  &MutationResult{Success: true, Entity: json.RawMessage(`{"id":"issue-uuid-1","identifier":"ENG-123"}`)},
		deleteResult:  &MutationResult{Success: true},
		commentResult: &MutationResult{Success: true, Entity: json.RawMessage(`{"id":"c1","body":"hi"}`)},
	}
}

// runWith dispatches argv against api and returns the exit code and the
// captured streams.
func runWith(t *testing.T, api linearAPI, argv ...string) (code int, stdout, stderr string) {
	t.Helper()
	return runWithStdin(t, api, "", argv...)
}

func runWithStdin(t *testing.T, api linearAPI, stdin string, argv ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		out:   &out,
		stdin: strings.NewReader(stdin),
		log:   zerolog.Nop(),
		connect: func() (linearAPI, error) {
			if api == nil {
				return nil, Config{}.requireAPIKey()
			}
			return api, nil
		},
	}
	if err := a.dispatch(context.Background(), parseArgs(argv)); err != nil {
		reportError(&errOut, err)
		return 1, out.String(), errOut.String()
	}
	return 0, out.String(), errOut.String()
}
