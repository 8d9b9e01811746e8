// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: a validated
// command object, a handler orchestrating collaborators, and a normalized
// failure on every error path.
//
// Handlers never return raw collaborator errors: everything is classified
// through the failure package so callers can branch on a stable kind.
package commands
