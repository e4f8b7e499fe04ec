package service

import (
	"errors"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
)

// classifyStoreErr passes domain errors through and wraps anything else in
// a PersistenceError for op.
func classifyStoreErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDuplicateProposalNumber),
		errors.Is(err, domain.ErrDuplicateFiscalID),
		errors.Is(err, domain.ErrDuplicateLogin),
		errors.Is(err, domain.ErrKitCycle),
		errors.Is(err, domain.ErrInUse):
		return err
	case db.IsUniqueViolation(err, "proposal_number"):
		return domain.ErrDuplicateProposalNumber
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

// classifyDeleteErr is classifyStoreErr for deletes, where a foreign key
// failure means the row is still referenced.
func classifyDeleteErr(op string, err error) error {
	if db.IsForeignKeyViolation(err) {
		return domain.ErrInUse
	}
	return classifyStoreErr(op, err)
}
