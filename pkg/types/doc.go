// Package types defines the Person record, the Storage interface, backend
// configuration, and the standard errors shared by the rolodex packages.
package types
