// Package common defines shared sentinel errors used across the metakv
// layers. Callers should use errors.Is to match these values; the concrete
// error text usually carries additional wrapped context.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors. Both are reported before any database call is made.
	ErrorKeyTooLong   = errors.New("key too long")
	ErrorValueTooLong = errors.New("value too long")

	// Startup errors. All three are fatal: the command loop never starts.
	ErrorConfig          = errors.New("invalid configuration")
	ErrorConnection      = errors.New("connection failed")
	ErrorSchemaBootstrap = errors.New("schema bootstrap failed")
)
