package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/repository"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) ListProperties(ctx context.Context, q models.PropertyQuery) ([]models.Property, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountProperties(ctx context.Context, f models.PropertyFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepository) GetPropertyBySlug(ctx context.Context, slug string) (*models.Property, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) InsertProperty(ctx context.Context, p models.Property) (uuid.UUID, bool, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockPropertyRepository) UpdatePropertyStatus(ctx context.Context, id uuid.UUID, estado models.Availability) error {
	args := m.Called(ctx, id, estado)
	return args.Error(0)
}

func (m *MockPropertyRepository) SetPropertyFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) ImagesForProperties(ctx context.Context, ids []uuid.UUID) ([]models.PropertyImage, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyImage), args.Error(1)
}

func (m *MockImageRepository) AddImages(ctx context.Context, propertyID uuid.UUID, urls []string) error {
	args := m.Called(ctx, propertyID, urls)
	return args.Error(0)
}

type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTaxonomyRepository) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTaxonomyRepository) SaveTag(ctx context.Context, tag models.Tag) (uuid.UUID, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTaxonomyRepository) EnsureTags(ctx context.Context, names []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, names)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockTaxonomyRepository) AttachTags(ctx context.Context, propertyID uuid.UUID, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, propertyID, tagIDs)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) TagsForProperty(ctx context.Context, propertyID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTaxonomyRepository) ListBarrios(ctx context.Context) ([]models.Barrio, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Barrio), args.Error(1)
}

func (m *MockTaxonomyRepository) GetBarrioBySlug(ctx context.Context, slug string) (*models.Barrio, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barrio), args.Error(1)
}

func (m *MockTaxonomyRepository) SaveBarrio(ctx context.Context, barrio models.Barrio) (uuid.UUID, error) {
	args := m.Called(ctx, barrio)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTaxonomyRepository) EnsureBarrio(ctx context.Context, name, city string) error {
	args := m.Called(ctx, name, city)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateCache(ctx context.Context) {
	m.Called(ctx)
}

// MockTransactor hands the mocked stores to fn and counts how each
// transaction ended.
type MockTransactor struct {
	stores    repository.CatalogStores
	commits   int
	rollbacks int
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(repository.CatalogStores) error) error {
	if err := fn(m.stores); err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}
