// Package moderation decides whether user input may be sent on to
// generation. A Moderator wraps an external Classifier and applies an
// explicit FailurePolicy for the case where the classifier cannot produce a
// verdict: fail-open treats the input as allowed, fail-closed as flagged.
package moderation
