package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator produces opaque transaction identifiers for payment results.
type Generator interface {
	TransactionID(gatewayID string) string
}

type uuidGenerator struct{}

func NewUUIDGenerator() Generator {
	return uuidGenerator{}
}

// TransactionID returns identifiers such as TXN-YAPE-0f8fad5b... The
// gateway segment makes simulated transactions traceable to their backend in
// logs and responses.
func (uuidGenerator) TransactionID(gatewayID string) string {
	return "TXN-" + strings.ToUpper(gatewayID) + "-" + uuid.NewString()
}
