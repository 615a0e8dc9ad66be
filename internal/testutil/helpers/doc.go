// Package helpers provides test helpers shared across packages:
// an observable logger, environment isolation and a step output reader.
package helpers
