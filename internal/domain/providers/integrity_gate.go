package providers

import "context"

// IntegrityGate defines the interface for the tamper-evidence check on the
// record ledger. The gate is fail-closed: any inability to prove validity
// reports false, never true.
type IntegrityGate interface {
	// Valid reports whether the record ledger is internally consistent
	Valid(ctx context.Context) bool
}
