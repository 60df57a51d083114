// Package jira provides a minimal Jira Cloud client for the reminder's one
// query: search issues by JQL.
//
// The client speaks to POST /rest/api/3/search/jql with basic auth (account
// email + API token), follows nextPageToken pagination, and retries transient
// failures with exponential backoff. Rendered description HTML is flattened
// to plain text for message previews.
package jira
