// Package app contains the application services: the authentication
// rules and the task access/lifecycle rules. Services receive the
// acting user as an explicit argument on every operation — there is no
// ambient "current user" — and reach storage only through ports.
package app
