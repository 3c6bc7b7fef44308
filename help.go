package main

const globalHelp = `linear-cli - CLI for working with Linear

Usage: linear-cli <resource> <action> [arguments] [options]

Resources:
  issue      Work with issues
  user       Work with users
  team       Work with teams
  project    Work with projects

Global Options:
  -h, --help    Show help
  --json        Output raw JSON

Run 'linear-cli <resource> --help' for resource-specific help
Run 'linear-cli <resource> <action> --help' for action-specific help

Examples:
  linear-cli issue list
  linear-cli issue view ENG-123
  linear-cli issue create "Fix bug" --team <team-id>
  linear-cli user list`

// listOnlyHelp renders the help of the resources whose only action is list.
func listOnlyHelp(resource, plural string) string {
	return `Usage: linear-cli ` + resource + ` <action>

Actions:
  list    List all ` + plural + `

Options:
  --json       Output raw JSON
  -h, --help   Show help

Examples:
  linear-cli ` + resource + ` list
  linear-cli ` + resource + ` list --json`
}

const issueHelp = `Usage: linear-cli issue <action> [arguments] [options]

Actions:
  list                            List issues with filters
  view <id-or-key>                Get detailed information about an issue
  create <title>                  Create a new issue
  update <id-or-key>              Update an issue
  delete <id-or-key>              Delete an issue (moves to trash)
  comment <id-or-key> <text>      Add a comment to an issue

Global Options:
  --json       Output raw JSON
  -h, --help   Show help

Run 'linear-cli issue <action> --help' for action-specific help`

const issueListHelp = `Usage: linear-cli issue list [options]

List issues with filters, most recently updated first

Options:
  --team <id>       Filter by team ID
  --assignee <id>   Filter by assignee user ID (use "@me" for yourself)
  --status <name>   Filter by status name
  --limit <n>       Limit results (default: 50)
  --json            Output raw JSON
  -h, --help        Show help

Examples:
  linear-cli issue list
  linear-cli issue list --team <team-id>
  linear-cli issue list --status "In Progress" --limit 10`

const issueViewHelp = `Usage: linear-cli issue view <id-or-key> [options]

Get detailed information about an issue

Arguments:
  id-or-key    Issue identifier (e.g., ENG-123 or full UUID)

Options:
  --json       Output raw JSON
  -h, --help   Show help

Examples:
  linear-cli issue view ENG-123
  linear-cli issue view <issue-uuid> --json`

const issueCreateHelp = `Usage: linear-cli issue create <title> [options]

Create a new issue

Arguments:
  title                 Issue title

Options:
  --team <id>           Team ID (required)
  --body <text>         Issue description (use --body-file for long text)
  --body-file <file>    Read description from file (use "-" for stdin)
  --assignee <id>       Assignee user ID (use "@me" for yourself)
  --label <name>        Label name(s) - can be specified multiple times or comma-separated
  --project <id>        Project ID to assign the issue to
  --parent <id-or-key>  Parent issue (for creating sub-issues)
  --priority <n>        Priority (0=None, 1=Urgent/P0, 2=High/P1, 3=Medium/P2, 4=Low/P3)
  --estimate <n>        Story point estimate
  --due-date <date>     Due date (YYYY-MM-DD format)
  --status <name>       Initial status (e.g. "Backlog", "Todo", "In Progress")
  --json                Output raw JSON
  -h, --help            Show help

Examples:
  linear-cli issue create "Fix bug" --team <team-id>
  linear-cli issue create "New feature" --team <team-id> --body "Details" --priority 2
  linear-cli issue create "Task" --team <team-id> --label bug --label p0
  echo "Long description" | linear-cli issue create "Title" --team <team-id> --body-file -
  linear-cli issue create "Sub-task" --team <team-id> --parent PROJ-123 --assignee @me`

const issueUpdateHelp = `Usage: linear-cli issue update <id-or-key> [options]

Update an issue

Arguments:
  id-or-key             Issue identifier (e.g., ENG-123 or full UUID)

Options:
  --status <name>       Update status
  --assignee <id>       Update assignee (use "@me" for yourself)
  --priority <n>        Update priority (0=None, 1=Urgent/P0, 2=High/P1, 3=Medium/P2, 4=Low/P3)
  --title <text>        Update title
  --body <text>         Update description
  --body-file <file>    Read description from file (use "-" for stdin)
  --label <name>        Set label(s) - can be specified multiple times or comma-separated
  --project <id>        Assign to project
  --parent <id-or-key>  Set parent issue
  --estimate <n>        Update story point estimate
  --due-date <date>     Set due date (YYYY-MM-DD format)
  --json                Output raw JSON
  -h, --help            Show help

Examples:
  linear-cli issue update ENG-123 --status "In Progress"
  linear-cli issue update ENG-123 --assignee @me --priority 1
  linear-cli issue update ENG-123 --label bug --label urgent`

const issueDeleteHelp = `Usage: linear-cli issue delete <id-or-key> [options]

Delete an issue (moves to trash)

Arguments:
  id-or-key    Issue identifier (e.g., ENG-123 or full UUID)

Options:
  --json       Output raw JSON
  -h, --help   Show help

Examples:
  linear-cli issue delete ENG-123
  linear-cli issue delete <issue-uuid>`

const issueCommentHelp = `Usage: linear-cli issue comment <id-or-key> <text> [options]

Add a comment to an issue

Arguments:
  id-or-key    Issue identifier (e.g., ENG-123 or full UUID)
  text         Comment text

Options:
  --json       Output raw JSON (comment details)
  -h, --help   Show help

Examples:
  linear-cli issue comment ENG-123 "This looks good"
  linear-cli issue comment ENG-123 "Fixed in PR #42" --json`

// helpFor returns the most specific help text for the given resource and
// action: action-level when both are known, then resource-level, then the
// global text.
func helpFor(resource, action string) string {
	res, ok := lookupResource(resource)
	if !ok {
		return globalHelp
	}
	if act, ok := res.action(action); ok && act.help != "" {
		return act.help
	}
	return res.help
}
