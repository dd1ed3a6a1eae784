// Package blog implements the blog content use cases of the service:
// generating blog post titles for a topic and generating blog post ideas
// with descriptions for a subject and tone.
//
// Every operation runs the input through content moderation first and only
// then asks the structured generator for a document of the expected shape.
// Flagged input ends the request with ErrInputNotAllowed without any
// generation call.
package blog
