package httpapp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapp "inmobiliaria/internal/app/http"
	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/services/auth"
	"inmobiliaria/internal/storage"
	httprouters "inmobiliaria/internal/transport/http"
	"inmobiliaria/internal/transport/http/dto"

	filestorage "inmobiliaria/internal/storage/filestorage"
	importsvc "inmobiliaria/internal/services/import_service"
	listingsvc "inmobiliaria/internal/services/listing_service"
)

type MockListing struct{ mock.Mock }

func (m *MockListing) ListProperties(ctx context.Context, filters listingsvc.Filters, sort models.SortOrder, page int) (*models.PropertyPage, error) {
	args := m.Called(ctx, filters, sort, page)
	res, _ := args.Get(0).(*models.PropertyPage)
	return res, args.Error(1)
}

func (m *MockListing) ListFeatured(ctx context.Context, limit int) ([]models.Property, error) {
	args := m.Called(ctx, limit)
	res, _ := args.Get(0).([]models.Property)
	return res, args.Error(1)
}

func (m *MockListing) GetProperty(ctx context.Context, slug string) (*models.Property, error) {
	args := m.Called(ctx, slug)
	res, _ := args.Get(0).(*models.Property)
	return res, args.Error(1)
}

func (m *MockListing) UpdateStatus(ctx context.Context, id uuid.UUID, estado models.Availability) error {
	return m.Called(ctx, id, estado).Error(0)
}

func (m *MockListing) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	return m.Called(ctx, id, featured).Error(0)
}

type MockImport struct{ mock.Mock }

func (m *MockImport) Import(ctx context.Context, r io.Reader, format importsvc.Format, dryRun bool) (*importsvc.Summary, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, string(body), format, dryRun)
	res, _ := args.Get(0).(*importsvc.Summary)
	return res, args.Error(1)
}

type MockLead struct{ mock.Mock }

func (m *MockLead) CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.LeadResponse)
	return res, args.Error(1)
}

func (m *MockLead) ListLeads(ctx context.Context, status string, page, perPage int) (*dto.LeadListResponse, error) {
	args := m.Called(ctx, status, page, perPage)
	res, _ := args.Get(0).(*dto.LeadListResponse)
	return res, args.Error(1)
}

func (m *MockLead) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockAuth struct{ mock.Mock }

func (m *MockAuth) Login(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuth) ValidateToken(token string) error {
	return m.Called(token).Error(0)
}

type failingCheck struct{ err error }

func (f failingCheck) HealthCheck(context.Context) error { return f.err }

type harness struct {
	server  *httpapp.Server
	listing *MockListing
	imports *MockImport
	leads   *MockLead
	auth    *MockAuth
}

func newHarness(t *testing.T, checks map[string]httpapp.HealthChecker) *harness {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	files, err := filestorage.NewLocalFileStorage(t.TempDir(), "", 1<<20)
	require.NoError(t, err)

	h := &harness{
		listing: new(MockListing),
		imports: new(MockImport),
		leads:   new(MockLead),
		auth:    new(MockAuth),
	}

	routers := httprouters.NewRouter(log, h.listing, h.imports, nil, h.leads, nil, h.auth, files)
	h.server = httpapp.New(log, "", "0", "session-secret", routers, checks)
	h.server.BuildRouters()

	return h
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.server.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var body struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NoError(t, json.Unmarshal(body.Data, dst))
}

func TestListProperties_PassesFiltersAndPage(t *testing.T) {
	h := newHarness(t, nil)

	page := &models.PropertyPage{Items: []models.Property{{Slug: "casa-chico"}}, TotalCount: 13, Page: 2, PageSize: 12}
	h.listing.On("ListProperties", mock.Anything,
		listingsvc.Filters{BarrioSlug: "chico", Operation: "arriendo", MinBedrooms: 3},
		models.SortPriceAsc, 2).Return(page, nil)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties/barrio/chico?operacion=arriendo&habitaciones=3&orden=precio-asc&page=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.PropertyPage
	decodeData(t, rec, &got)
	assert.Equal(t, 13, got.TotalCount)
	assert.Equal(t, "casa-chico", got.Items[0].Slug)
	h.listing.AssertExpectations(t)
}

func TestListProperties_DegradesToEmptyPage(t *testing.T) {
	h := newHarness(t, nil)
	h.listing.On("ListProperties", mock.Anything, listingsvc.Filters{}, models.SortNewest, 1).
		Return(nil, errors.New("connection refused"))

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties?page=-4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.PropertyPage
	decodeData(t, rec, &got)
	assert.Empty(t, got.Items)
	assert.NotNil(t, got.Items)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, listingsvc.DefaultPageSize, got.PageSize)
}

func TestGetProperty_NotFound(t *testing.T) {
	h := newHarness(t, nil)
	h.listing.On("GetProperty", mock.Anything, "no-existe").Return(nil, storage.ErrPropertyNotFound)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/properties/no-existe", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestCreateLead(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(m *MockLead)
		wantStatus int
	}{
		{
			name: "created",
			body: `{"name":"Ana Gómez","phone":"3001234567","property_slug":"casa-chico"}`,
			mockSetup: func(m *MockLead) {
				m.On("CreateLead", mock.Anything, dto.CreateLeadRequest{Name: "Ana Gómez", Phone: "3001234567", PropertySlug: "casa-chico"}).
					Return(&dto.LeadResponse{ID: uuid.New(), Name: "Ana Gómez", Status: "pendiente"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing phone",
			body:       `{"name":"Ana Gómez"}`,
			mockSetup:  func(m *MockLead) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed property slug",
			body:       `{"name":"Ana Gómez","phone":"3001234567","property_slug":"Casa Chicó"}`,
			mockSetup:  func(m *MockLead) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown property",
			body: `{"name":"Ana Gómez","phone":"3001234567","property_slug":"no-existe"}`,
			mockSetup: func(m *MockLead) {
				m.On("CreateLead", mock.Anything, mock.Anything).Return(nil, storage.ErrPropertyNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			tt.mockSetup(h.leads)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := h.do(req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			h.leads.AssertExpectations(t)
		})
	}
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	h := newHarness(t, nil)
	h.auth.On("ValidateToken", "bad").Return(auth.ErrInvalidCredentials)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = h.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("Authorization", "Basic YWRtaW46YWRtaW4=")
	rec = h.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	h.leads.AssertNotCalled(t, "ListLeads", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminRoutes_BearerToken(t *testing.T) {
	h := newHarness(t, nil)
	h.auth.On("ValidateToken", "good").Return(nil)
	h.leads.On("ListLeads", mock.Anything, "pendiente", 1, 20).
		Return(&dto.LeadListResponse{Leads: []dto.LeadResponse{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads?status=pendiente", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	h.leads.AssertExpectations(t)
}

func TestAdminLogin_SessionCookie(t *testing.T) {
	h := newHarness(t, nil)
	h.auth.On("Login", mock.Anything, "wrong").Return("", auth.ErrInvalidCredentials)
	h.auth.On("Login", mock.Anything, "s3cret-pass").Return("signed.jwt.token", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := h.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"s3cret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = h.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens map[string]string
	decodeData(t, rec, &tokens)
	assert.Equal(t, "signed.jwt.token", tokens["access_token"])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	id := uuid.New()
	h.listing.On("SetFeatured", mock.Anything, id, true).Return(nil)

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/admin/properties/"+id.String()+"/featured", strings.NewReader(`{"destacado":true}`))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = h.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	h.listing.AssertExpectations(t)
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer good")
	return req
}

func TestImportProperties(t *testing.T) {
	const csvBody = "slug,title,price\ncasa-chico,Casa en Chicó,850000000\n"

	h := newHarness(t, nil)
	h.auth.On("ValidateToken", "good").Return(nil)
	h.imports.On("Import", mock.Anything, csvBody, importsvc.FormatCSV, true).
		Return(&importsvc.Summary{ImportReport: models.ImportReport{Inserted: 1, Errors: []models.ImportError{}}, DryRun: true}, nil)

	rec := h.do(multipartUpload(t, "export.csv", csvBody, map[string]string{"dry_run": "true"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var report models.ImportReport
	decodeData(t, rec, &report)
	assert.Equal(t, 1, report.Inserted)
	h.imports.AssertExpectations(t)
}

func TestImportProperties_Rejections(t *testing.T) {
	h := newHarness(t, nil)
	h.auth.On("ValidateToken", "good").Return(nil)

	rec := h.do(multipartUpload(t, "export.xlsx", "x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(multipartUpload(t, "huge.json", strings.Repeat("a", 2<<20), nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	h.imports.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	h := newHarness(t, map[string]httpapp.HealthChecker{"postgres": failingCheck{}})
	rec := h.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"ok"`)

	h = newHarness(t, map[string]httpapp.HealthChecker{"redis": failingCheck{err: errors.New("dial tcp: timeout")}})
	rec = h.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "dial tcp: timeout")
}

func TestNewValidator_Slug(t *testing.T) {
	v := httpapp.NewValidator()

	type payload struct {
		Slug string `validate:"slug"`
	}

	assert.NoError(t, v.Validate(payload{Slug: "apartamento-en-chico-2"}))
	assert.Error(t, v.Validate(payload{Slug: "Apartamento Chicó"}))
	assert.Error(t, v.Validate(payload{Slug: "doble--guion"}))
}

