// Package queries contains the read side of the application layer. Query
// handlers serve role-scoped order views from the projection index and
// never mutate state; each query validates itself through a constructor
// guard before the handler touches a port.
package queries
