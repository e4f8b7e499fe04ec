package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/google/uuid"
)

type clientService struct {
	clients  repository.ClientRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewClientService(clients repository.ClientRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ClientService {
	return &clientService{clients: clients, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Save creates or updates the client and replaces its contacts with
// c.Contacts in the same transaction.
func (s *clientService) Save(ctx context.Context, c *domain.Client) (id string, err error) {
	fields := map[string]any{"contacts": len(c.Contacts)}
	defer observe(ctx, s.observer, "save-client", time.Now().UTC(), fields, &err)

	work := *c
	work.Contacts = append([]domain.Contact(nil), c.Contacts...)
	work.Normalize()
	if err = work.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	creating := work.ID == ""
	if creating {
		work.ID = uuid.New().String()
		work.CreatedAt = now
	}
	work.UpdatedAt = now
	fields["create"] = creating

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		if creating {
			if err := txClients.Create(ctx, &work); err != nil {
				return err
			}
		} else if err := txClients.Update(ctx, &work); err != nil {
			return err
		}
		return txClients.ReplaceContacts(ctx, work.ID, work.Contacts)
	})
	if err != nil {
		return "", classifyStoreErr("saving client", err)
	}
	*c = work
	return work.ID, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, classifyStoreErr("loading client", err)
	}
	return c, nil
}

func (s *clientService) Search(ctx context.Context, term string) ([]domain.ClientSummary, error) {
	res, err := s.clients.Search(ctx, term)
	if err != nil {
		return nil, classifyStoreErr("searching clients", err)
	}
	return res, nil
}

// Delete removes the client and its contacts. Clients with quotations
// cannot be deleted.
func (s *clientService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-client", time.Now().UTC(), map[string]any{"client_id": id}, &err)

	return classifyDeleteErr("deleting client", s.clients.Delete(ctx, id))
}

func (s *clientService) AddContact(ctx context.Context, clientID string, ct domain.Contact) (err error) {
	defer observe(ctx, s.observer, "add-contact", time.Now().UTC(), map[string]any{"client_id": clientID}, &err)

	ct.Name = strings.TrimSpace(ct.Name)
	if ct.Name == "" {
		return domain.NewValidationError("contact.name", domain.ErrNameRequired)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		ok, err := txClients.Exists(ctx, clientID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("client %s: %w", clientID, domain.ErrNotFound)
		}
		contacts, err := txClients.ListContacts(ctx, clientID)
		if err != nil {
			return err
		}
		return txClients.ReplaceContacts(ctx, clientID, append(contacts, ct))
	})
	return classifyStoreErr("adding contact", err)
}
