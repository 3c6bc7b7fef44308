package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

type handlerFunc func(ctx context.Context, inv *invocation) error

type actionSpec struct {
	name string
	help string
	// minArgs positional arguments are required; missing is the error
	// reported when fewer are given.
	minArgs int
	missing string
	run     handlerFunc
}

type resourceSpec struct {
	name    string
	help    string
	actions []actionSpec
}

func (r resourceSpec) action(name string) (actionSpec, bool) {
	for _, a := range r.actions {
		if a.name == name {
			return a, true
		}
	}
	return actionSpec{}, false
}

func (r resourceSpec) actionNames() []string {
	names := make([]string, len(r.actions))
	for i, a := range r.actions {
		names[i] = a.name
	}
	return names
}

var resources []resourceSpec

func init() {
	resources = []resourceSpec{
		{name: "user", help: listOnlyHelp("user", "users"), actions: []actionSpec{
			{name: "list", run: runUserList},
		}},
		{name: "team", help: listOnlyHelp("team", "teams"), actions: []actionSpec{
			{name: "list", run: runTeamList},
		}},
		{name: "project", help: listOnlyHelp("project", "projects"), actions: []actionSpec{
			{name: "list", run: runProjectList},
		}},
		{name: "issue", help: issueHelp, actions: []actionSpec{
			{name: "list", help: issueListHelp, run: runIssueList},
			{name: "view", help: issueViewHelp, minArgs: 1, missing: "Missing issue identifier", run: runIssueView},
			{name: "create", help: issueCreateHelp, minArgs: 1, missing: "Missing issue title", run: runIssueCreate},
			{name: "update", help: issueUpdateHelp, minArgs: 1, missing: "Missing issue identifier", run: runIssueUpdate},
			{name: "delete", help: issueDeleteHelp, minArgs: 1, missing: "Missing issue identifier", run: runIssueDelete},
			{name: "comment", help: issueCommentHelp, minArgs: 2, missing: "Missing required arguments", run: runIssueComment},
		}},
	}
}

func lookupResource(name string) (resourceSpec, bool) {
	for _, r := range resources {
		if r.name == name {
			return r, true
		}
	}
	return resourceSpec{}, false
}

// app holds what every invocation shares: the output streams, the logger
// and a way to obtain an API client once the command is known to need one.
type app struct {
	out     io.Writer
	stdin   io.Reader
	log     zerolog.Logger
	connect func() (linearAPI, error)
}

// invocation is the state of one command run.
type invocation struct {
	cmd   ParsedCommand
	out   io.Writer
	stdin io.Reader
	log   zerolog.Logger
	json  bool

	connectFn func() (linearAPI, error)
	api       linearAPI
	resolver  *resolver
}

// connect returns the API client, creating it on first use.
func (inv *invocation) connect() (linearAPI, error) {
	if inv.api != nil {
		return inv.api, nil
	}
	api, err := inv.connectFn()
	if err != nil {
		return nil, err
	}
	inv.api = api
	inv.resolver = newResolver(api, inv.log)
	return api, nil
}

// dispatch routes a parsed command to its handler. Help requests and usage
// errors are handled here, before any client is created.
func (a *app) dispatch(ctx context.Context, cmd ParsedCommand) error {
	if cmd.wantsHelp() {
		fmt.Fprintln(a.out, helpFor(cmd.Resource, cmd.Action))
		return nil
	}
	if cmd.Resource == "" {
		fmt.Fprintln(a.out, globalHelp)
		return nil
	}

	res, ok := lookupResource(cmd.Resource)
	if !ok {
		return errors.WithHint(usageErrorf("Unknown resource '%s'", cmd.Resource), helpHint(""))
	}

	act, ok := res.action(cmd.Action)
	if !ok {
		var err error
		if cmd.Action == "" {
			err = usageErrorf("Missing action for resource '%s'", res.name)
		} else {
			err = usageErrorf("Unknown action '%s' for resource '%s'", cmd.Action, res.name)
		}
		return errors.WithHintf(err, "Available actions: %s\n\n%s", strings.Join(res.actionNames(), ", "), helpHint(res.name))
	}

	path := res.name + " " + act.name
	if len(cmd.Args) < act.minArgs {
		return errors.WithHint(usageErrorf("%s", act.missing), helpHint(path))
	}

	inv := &invocation{
		cmd:       cmd,
		out:       a.out,
		stdin:     a.stdin,
		log:       a.log.With().Str("command", path).Logger(),
		json:      cmd.wantsJSON(),
		connectFn: a.connect,
	}
	inv.log.Debug().Strs("args", cmd.Args).Int("flags", len(cmd.Flags)).Msg("dispatch")
	return withUsageHint(act.run(ctx, inv), path)
}

// runCollectionList prints one page of a collection: verbatim JSON, or a
// title and one tab-separated line per record.
func runCollectionList[T any](ctx context.Context, inv *invocation, fetch func(linearAPI, context.Context) (json.RawMessage, error), title string, line func(T) string) error {
	api, err := inv.connect()
	if err != nil {
		return err
	}
	raw, err := fetch(api, ctx)
	if err != nil {
		return err
	}
	if inv.json {
		return writeJSON(inv.out, raw)
	}

	var records []T
	if err := decodeData(raw, &records); err != nil {
		return err
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = line(r)
	}
	printRecords(inv.out, title, lines)
	return nil
}

func runUserList(ctx context.Context, inv *invocation) error {
	return runCollectionList(ctx, inv, linearAPI.Users, "Users", formatUserLine)
}

func runTeamList(ctx context.Context, inv *invocation) error {
	return runCollectionList(ctx, inv, linearAPI.Teams, "Teams", formatTeamLine)
}

func runProjectList(ctx context.Context, inv *invocation) error {
	return runCollectionList(ctx, inv, linearAPI.Projects, "Projects", formatProjectLine)
}
