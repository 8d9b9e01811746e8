// Package queries contains read-only operations of the CQRS split. Query
// handlers never mutate state and return flat response structs rather than
// domain aggregates, so transport adapters do not reach into the domain
// model.
package queries
