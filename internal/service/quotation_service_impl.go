package service

import (
	"context"
	"fmt"
	"time"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/google/uuid"
)

// QuotationSettings are the configurable quotation defaults.
type QuotationSettings struct {
	Currency     string
	ValidityDays int
}

type quotationService struct {
	quotations repository.QuotationRepo
	uow        db.UnitOfWork
	settings   QuotationSettings
	observer   UseCaseObserver
}

func NewQuotationService(
	quotations repository.QuotationRepo,
	uow db.UnitOfWork,
	settings QuotationSettings,
	observers ...UseCaseObserver,
) QuotationService {
	return &quotationService{
		quotations: quotations,
		uow:        uow,
		settings:   settings,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *quotationService) Save(ctx context.Context, q *domain.Quotation) (id string, err error) {
	fields := map[string]any{"proposal_number": q.ProposalNumber, "items": len(q.Items)}
	defer observe(ctx, s.observer, "save-quotation", time.Now().UTC(), fields, &err)

	work := cloneQuotation(q)
	work.Terms.Currency = domain.CoalesceStr(work.Terms.Currency, s.settings.Currency)
	work.Normalize()

	now := time.Now().UTC()
	creating := work.IsNew()
	if creating {
		work.ID = uuid.New().String()
		work.CreatedDate = now
		if work.ExpiryDate == nil {
			work.ExpiryDate = domain.DefaultExpiry(now, s.settings.ValidityDays)
		}
	}
	work.UpdatedAt = now
	fields["create"] = creating

	if err = work.Validate(); err != nil {
		return "", err
	}
	work.RecomputeTotals()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		txUsers := repository.NewSQLiteUserRepo(tx)
		txQuotations := repository.NewSQLiteQuotationRepo(tx)
		txItems := repository.NewSQLiteLineItemRepo(tx)

		ok, err := txClients.Exists(ctx, work.ClientID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("client %s: %w", work.ClientID, domain.ErrNotFound)
		}
		if work.OwnerID != "" {
			if _, err := txUsers.GetByID(ctx, work.OwnerID); err != nil {
				return err
			}
		}

		taken, err := txQuotations.ProposalNumberTaken(ctx, work.ProposalNumber, work.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("proposal %s: %w", work.ProposalNumber, domain.ErrDuplicateProposalNumber)
		}

		if creating {
			if err := txQuotations.Create(ctx, work); err != nil {
				return err
			}
		} else {
			if err := txQuotations.Update(ctx, work); err != nil {
				return err
			}
			if err := txItems.DeleteByQuotation(ctx, work.ID); err != nil {
				return err
			}
		}

		for i := range work.Items {
			it := &work.Items[i]
			it.ID = uuid.New().String()
			it.QuotationID = work.ID
			it.Position = i
			if err := txItems.Create(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", classifyStoreErr("saving quotation", err)
	}

	*q = *work
	fields["total"] = work.Total
	return work.ID, nil
}

func (s *quotationService) Get(ctx context.Context, id string) (*domain.Quotation, error) {
	q, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, classifyStoreErr("loading quotation", err)
	}
	return q, nil
}

func (s *quotationService) List(ctx context.Context, f repository.QuotationFilter) ([]repository.QuotationSummary, error) {
	if f.Status != "" && !domain.ValidQuotationStatuses[f.Status] {
		return nil, domain.NewValidationError("status", domain.ErrInvalidValue)
	}
	list, err := s.quotations.List(ctx, f)
	if err != nil {
		return nil, classifyStoreErr("listing quotations", err)
	}
	return list, nil
}

func (s *quotationService) SetStatus(ctx context.Context, id string, status domain.QuotationStatus) (err error) {
	defer observe(ctx, s.observer, "set-quotation-status", time.Now().UTC(),
		map[string]any{"quotation_id": id, "status": string(status)}, &err)

	if !domain.ValidQuotationStatuses[status] {
		return domain.NewValidationError("status", domain.ErrInvalidValue)
	}
	return classifyStoreErr("setting quotation status", s.quotations.SetStatus(ctx, id, status))
}

func (s *quotationService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-quotation", time.Now().UTC(),
		map[string]any{"quotation_id": id}, &err)

	return classifyDeleteErr("deleting quotation", s.quotations.Delete(ctx, id))
}

func (s *quotationService) Copy(ctx context.Context, srcID, proposalNumber string) (string, error) {
	src, err := s.Get(ctx, srcID)
	if err != nil {
		return "", err
	}
	return s.Save(ctx, quote.FromQuotation(src, proposalNumber).Quotation())
}

func (s *quotationService) Settings() QuotationSettings {
	return QuotationSettings{
		Currency:     domain.CoalesceStr(s.settings.Currency, domain.DefaultCurrency),
		ValidityDays: s.settings.ValidityDays,
	}
}

func cloneQuotation(q *domain.Quotation) *domain.Quotation {
	cp := *q
	cp.Items = make([]domain.LineItem, len(q.Items))
	copy(cp.Items, q.Items)
	if q.ExpiryDate != nil {
		d := *q.ExpiryDate
		cp.ExpiryDate = &d
	}
	return &cp
}
