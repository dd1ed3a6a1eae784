// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the blog service, translating HTTP concerns to business operations.
//
// Every blog endpoint answers with the shared.Envelope body. By default all
// business outcomes use HTTP 200; with strict status codes enabled, rejected
// input, invalid requests and exhausted retries get distinct statuses while
// the body stays the same.
package api
