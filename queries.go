package main

// GraphQL documents. Issue lookups preload every relation the issue view
// needs so a single round trip is enough.

const issueDetailFields = `
    id
    identifier
    title
    description
    priority
    estimate
    dueDate
    url
    createdAt
    updatedAt
    state {
      name
    }
    assignee {
      name
      email
    }
    team {
      id
      name
      key
    }
    parent {
      identifier
      title
    }
    project {
      id
      name
    }
    labels {
      nodes {
        name
      }
    }
    comments {
      nodes {
        body
        createdAt
        user {
          name
        }
      }
    }`

const issueMutationFields = `
      id
      identifier
      title
      url
      priority
      estimate
      dueDate
      state {
        name
      }
      assignee {
        name
      }`

// buildViewerIDQuery returns a query to get the current user's ID
func buildViewerIDQuery() string {
	return `query Viewer { viewer { id name email } }`
}

func buildUsersQuery() string {
	return `
query ListUsers {
  users(first: 250) {
    nodes {
      id
      name
      displayName
      email
      active
    }
  }
}
`
}

func buildTeamsQuery() string {
	return `
query ListTeams {
  teams(first: 250) {
    nodes {
      id
      name
      key
    }
  }
}
`
}

func buildProjectsQuery() string {
	return `
query ListProjects {
  projects(first: 250) {
    nodes {
      id
      name
      state
      status {
        name
      }
    }
  }
}
`
}

// buildListIssuesQuery returns a query for one page of issues
func buildListIssuesQuery() string {
	return `
query ListIssues($first: Int!, $filter: IssueFilter, $orderBy: PaginationOrderBy!) {
  issues(first: $first, filter: $filter, orderBy: $orderBy) {
    nodes {
      id
      identifier
      title
      state {
        name
      }
      assignee {
        name
        email
      }
    }
  }
}
`
}

// buildGetIssueQuery returns a query to get a specific issue by ID
func buildGetIssueQuery() string {
	return `
query GetIssue($id: String!) {
  issue(id: $id) {` + issueDetailFields + `
  }
}
`
}

// buildGetIssueByNumberQuery looks an issue up by team key and number
func buildGetIssueByNumberQuery() string {
	return `
query GetIssueByNumber($teamKey: String!, $number: Float!) {
  issues(first: 1, filter: { team: { key: { eq: $teamKey } }, number: { eq: $number } }) {
    nodes {` + issueDetailFields + `
    }
  }
}
`
}

func buildTeamLabelsQuery() string {
	return `
query TeamLabels($teamId: String!) {
  team(id: $teamId) {
    labels(first: 250) {
      nodes {
        id
        name
      }
    }
  }
}
`
}

// buildWorkflowStatesQuery returns a query to get workflow states for a team
func buildWorkflowStatesQuery() string {
	return `
query TeamStates($teamId: String!) {
  team(id: $teamId) {
    states {
      nodes {
        id
        name
        type
      }
    }
  }
}
`
}

// buildCreateIssueMutation returns a mutation to create an issue
func buildCreateIssueMutation() string {
	return `
mutation CreateIssue($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue {` + issueMutationFields + `
    }
  }
}
`
}

func buildUpdateIssueMutation() string {
	return `
mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
  issueUpdate(id: $id, input: $input) {
    success
    issue {` + issueMutationFields + `
    }
  }
}
`
}

// buildDeleteIssueMutation moves an issue to the trash. permanentlyDelete is
// left at its default so the issue stays recoverable.
func buildDeleteIssueMutation() string {
	return `
mutation DeleteIssue($id: String!) {
  issueDelete(id: $id) {
    success
  }
}
`
}
