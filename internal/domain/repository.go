package domain

import "context"

// RecordStore is the append-only persistence contract for captured HTTP
// exchanges. This abstracts away the specific backends (NDJSON file,
// PostgreSQL, Redis, in-memory).
type RecordStore interface {
	// Append durably persists a record before returning. Appended records
	// are never updated or individually deleted.
	Append(ctx context.Context, rec Record) error

	// ReadAll returns every persisted record in original append order.
	// Individual corrupted entries are skipped, never fatal.
	ReadAll(ctx context.Context) ([]Record, error)
}

// CredentialSource resolves an opaque bearer credential by account name.
// Issuance and refresh of the credential are owned by the upstream auth
// service, not by this repository.
type CredentialSource interface {
	Credential(ctx context.Context, account string) (string, error)
}
