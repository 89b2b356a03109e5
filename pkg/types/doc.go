// Package types defines the content entry and snapshot types, gateway
// records, configuration, and standard errors for the pantry content system.
package types
