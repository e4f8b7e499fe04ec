package cli

import (
	"errors"
	"fmt"

	"github.com/compressorworks/crm/internal/domain"
)

// UserMessage turns a service error into a one-line message for the
// status bar or stderr. Field names are shown by their form labels.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *domain.ValidationError
	var pe *domain.PersistenceError
	switch {
	case errors.As(err, &ve):
		if ve.Field == "" {
			return ve.Err.Error()
		}
		field := ve.Field
		if label, ok := domain.LabelForField(field); ok {
			field = label
		}
		return fmt.Sprintf("%s: %v", field, ve.Err)
	case errors.Is(err, domain.ErrDuplicateProposalNumber):
		return "proposal number already in use; choose another"
	case errors.Is(err, domain.ErrDuplicateFiscalID):
		return "a client with this CNPJ/CPF already exists"
	case errors.Is(err, domain.ErrDuplicateLogin):
		return "login already in use"
	case errors.Is(err, domain.ErrKitCycle):
		return "a kit cannot contain itself"
	case errors.Is(err, domain.ErrInUse):
		return "record is referenced elsewhere and cannot be removed"
	case errors.Is(err, domain.ErrNotFound):
		return err.Error()
	case errors.As(err, &pe):
		return fmt.Sprintf("storage failure while %s: %v", pe.Op, pe.Err)
	}
	return err.Error()
}
