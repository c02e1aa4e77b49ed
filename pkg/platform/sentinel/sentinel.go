package sentinel

import "errors"

// Sentinel errors for store-level facts. Store implementations return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about stored records, not validation
// failures:
// - ErrNotFound: no record matched the id (and, for contacts, the visibility filter)
// - ErrAlreadyUsed: a unique field (username, email) is already taken
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
)
