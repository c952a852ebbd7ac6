// Package orgdata exposes CRUD over the organizations collection of the
// currently active tagged data store. It is the representative consumer of
// the tagged store: every call reads or mutates whichever db-{tag}.json is
// active at that moment, so a tag switch redirects it transparently.
package orgdata

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/planfold/planfold/internal/common"
	"github.com/planfold/planfold/internal/server/models"
	"github.com/planfold/planfold/internal/server/store"
)

// Input carries the caller-settable organization fields.
type Input struct {
	Name        string
	Description string
}

type Service struct {
	manager *store.Manager
	now     func() time.Time
}

// NewService constructs a Service over the store manager.
func NewService(m *store.Manager) *Service {
	return &Service{manager: m, now: time.Now}
}

// List returns all organizations in the active tagged store.
func (s *Service) List(ctx context.Context) ([]models.Organization, error) {
	dataStore, err := s.manager.Data()
	if err != nil {
		return nil, err
	}
	orgs := make([]models.Organization, len(dataStore.Data().Organizations))
	copy(orgs, dataStore.Data().Organizations)
	return orgs, nil
}

// Get returns one organization by id.
func (s *Service) Get(ctx context.Context, id string) (models.Organization, error) {
	dataStore, err := s.manager.Data()
	if err != nil {
		return models.Organization{}, err
	}
	for _, org := range dataStore.Data().Organizations {
		if org.ID == id {
			return org, nil
		}
	}
	return models.Organization{}, common.ErrNotFound
}

// Create appends a new organization with a server-assigned id and persists
// the store.
func (s *Service) Create(ctx context.Context, in Input) (models.Organization, error) {
	org := models.Organization{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	err := s.manager.UpdateData(func(doc *models.DataDocument) error {
		doc.Organizations = append(doc.Organizations, org)
		return nil
	})
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// Update replaces the mutable fields of an existing organization.
func (s *Service) Update(ctx context.Context, id string, in Input) (models.Organization, error) {
	var updated models.Organization
	err := s.manager.UpdateData(func(doc *models.DataDocument) error {
		for i := range doc.Organizations {
			if doc.Organizations[i].ID != id {
				continue
			}
			doc.Organizations[i].Name = in.Name
			doc.Organizations[i].Description = in.Description
			updated = doc.Organizations[i]
			return nil
		}
		return common.ErrNotFound
	})
	if err != nil {
		return models.Organization{}, err
	}
	return updated, nil
}

// Delete removes the organization. Dependent records (departments, projects)
// are left in place; referential cleanup is the caller's concern.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.manager.UpdateData(func(doc *models.DataDocument) error {
		for i := range doc.Organizations {
			if doc.Organizations[i].ID == id {
				doc.Organizations = append(doc.Organizations[:i], doc.Organizations[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound
	})
}
