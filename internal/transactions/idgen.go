package transactions

import "github.com/google/uuid"

const transactionIDPrefix = "TXN-"

// IDGenerator produces externally visible transaction identifiers. It is
// injectable so tests can use deterministic ids.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator issues TXN-prefixed random identifiers.
type UUIDGenerator struct{}

// Next returns a fresh transaction id.
func (UUIDGenerator) Next() string {
	return transactionIDPrefix + uuid.NewString()
}
