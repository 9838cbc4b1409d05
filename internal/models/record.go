// Package models defines the data model persisted by the metadata store.
package models

// Record is a single key/value pair from the metadata table. It is the only
// persisted entity: at most one record exists per key, enforced by the
// table's primary key together with the store's upsert statement.
type Record struct {
	// Key identifies the record; at most 80 characters.
	Key string

	// Value is the stored payload; at most 200 characters. The empty string
	// is a legal value and is distinct from the key being absent.
	Value string
}
