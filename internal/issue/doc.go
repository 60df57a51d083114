// Package issue provides types and functions for tracking Jira issues across
// reminder runs.
//
// The issue package handles the in-memory issue representation and the
// notified-state diffing that decides which issues get a reminder. State is a
// set of already-notified issue keys; diffing a fresh query result against it
// yields the issues to send, while keys no longer returned by the query are
// pruned so reopened issues are reported again.
package issue
