// Package types defines the entity types, filter enums, Config, and
// standard errors for the Binder record store.
package types
