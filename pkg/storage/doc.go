// Package storage defines the account store contract shared by the storage
// adapters (memory, postgres) and the sentinel errors they return.
package storage
