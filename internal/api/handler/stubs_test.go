package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

// memSessions is an in-memory ports.SessionStore.
type memSessions struct {
	seq      int
	sessions map[string]*domain.Session
	flashes  map[string][]domain.Flash
	deleted  []string
}

func newMemSessions() *memSessions {
	return &memSessions{
		sessions: make(map[string]*domain.Session),
		flashes:  make(map[string][]domain.Flash),
	}
}

func (m *memSessions) Create(_ context.Context, accountID int64) (*domain.Session, error) {
	m.seq++
	now := time.Now()
	s := &domain.Session{ID: fmt.Sprintf("sess-%d", m.seq), AccountID: accountID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memSessions) AddFlash(_ context.Context, sid string, f domain.Flash) error {
	m.flashes[sid] = append(m.flashes[sid], f)
	return nil
}

func (m *memSessions) PopFlashes(_ context.Context, sid string) ([]domain.Flash, error) {
	out := m.flashes[sid]
	delete(m.flashes, sid)
	return out, nil
}

// stubStore is an in-memory ports.CatalogStore.
type stubStore struct {
	products []domain.Product
	offers   []domain.Offer
	users    []domain.ExternalUser

	failWrites bool

	createdOffers []domain.OfferInput
	updatedOffers map[string]domain.OfferInput
	createdUsers  []domain.ExternalUserInput
	updatedUsers  map[string]domain.ExternalUserInput
	deleted       []string
}

func (s *stubStore) Products(context.Context) []domain.Product { return s.products }

func (s *stubStore) Product(_ context.Context, id int64) *domain.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func (s *stubStore) ProductsByCategory(_ context.Context, category string) []domain.Product {
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (s *stubStore) SearchProducts(_ context.Context, q string) []domain.Product {
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out
}

func (s *stubStore) Offers(context.Context) []domain.Offer { return s.offers }

func (s *stubStore) Offer(_ context.Context, id string) *domain.Offer {
	for i := range s.offers {
		if s.offers[i].ID == id {
			return &s.offers[i]
		}
	}
	return nil
}

func (s *stubStore) CreateOffer(_ context.Context, in domain.OfferInput) domain.WriteResult[domain.Offer] {
	if s.failWrites {
		return domain.WriteResult[domain.Offer]{Message: "Error creating offer: boom", Error: "boom"}
	}
	s.createdOffers = append(s.createdOffers, in)
	return domain.WriteResult[domain.Offer]{Success: true, Message: "Offer created successfully"}
}

func (s *stubStore) UpdateOffer(_ context.Context, id string, in domain.OfferInput) domain.WriteResult[domain.Offer] {
	if s.updatedOffers == nil {
		s.updatedOffers = make(map[string]domain.OfferInput)
	}
	s.updatedOffers[id] = in
	return domain.WriteResult[domain.Offer]{Success: true, Message: "Offer updated successfully"}
}

func (s *stubStore) DeleteOffer(_ context.Context, id string) domain.WriteResult[domain.Offer] {
	s.deleted = append(s.deleted, id)
	return domain.WriteResult[domain.Offer]{Success: true, Message: "Offer deleted successfully"}
}

func (s *stubStore) Users(context.Context) []domain.ExternalUser { return s.users }

func (s *stubStore) User(_ context.Context, id string) *domain.ExternalUser {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *stubStore) CreateUser(_ context.Context, in domain.ExternalUserInput) domain.WriteResult[domain.ExternalUser] {
	if s.failWrites {
		return domain.WriteResult[domain.ExternalUser]{Message: "Error creating user: boom", Error: "boom"}
	}
	s.createdUsers = append(s.createdUsers, in)
	return domain.WriteResult[domain.ExternalUser]{Success: true, Message: "User created successfully"}
}

func (s *stubStore) UpdateUser(_ context.Context, id string, in domain.ExternalUserInput) domain.WriteResult[domain.ExternalUser] {
	if s.updatedUsers == nil {
		s.updatedUsers = make(map[string]domain.ExternalUserInput)
	}
	s.updatedUsers[id] = in
	return domain.WriteResult[domain.ExternalUser]{Success: true, Message: "User updated successfully"}
}

func (s *stubStore) DeleteUser(_ context.Context, id string) domain.WriteResult[domain.ExternalUser] {
	s.deleted = append(s.deleted, id)
	return domain.WriteResult[domain.ExternalUser]{Success: true, Message: "User deleted successfully"}
}

func (s *stubStore) Ping(_ context.Context, table string) domain.PingResult {
	return domain.PingResult{Status: "success", Connected: true, TableAccessible: true, TableName: table}
}

type stubCatalogService struct {
	products   []domain.Product
	categories []string
	listErr    error
	ping       domain.PingResult

	lastFilter ports.ProductFilter
}

func (s *stubCatalogService) ListProducts(_ context.Context, f ports.ProductFilter) ([]domain.Product, error) {
	s.lastFilter = f
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func (s *stubCatalogService) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubCatalogService) Categories(context.Context) ([]string, error) {
	return s.categories, nil
}

func (s *stubCatalogService) Ping(_ context.Context, table string) domain.PingResult {
	res := s.ping
	res.TableName = table
	return res
}

type stubMirror struct {
	pending []*domain.MirrorEntry
	retried []string
	result  domain.WriteResult[domain.ExternalUser]
}

func (m *stubMirror) MirrorAccount(context.Context, *domain.Account) {}

func (m *stubMirror) Pending(context.Context) ([]*domain.MirrorEntry, error) {
	return m.pending, nil
}

func (m *stubMirror) Retry(_ context.Context, id string) domain.WriteResult[domain.ExternalUser] {
	m.retried = append(m.retried, id)
	return m.result
}

// newEcho returns an Echo instance with the validator and page renderer set.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	e.Renderer = r
	return e
}

// staffContext builds a context as the Session middleware leaves it for a
// logged-in staff account.
func staffContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.AccountKey, &domain.Account{ID: 1, Username: "root", IsStaff: true, IsActive: true})
	c.Set(middleware.SessionIDKey, "staff-session")
	c.Set(middleware.CSRFContext, "token-123")
	return c, rec
}
