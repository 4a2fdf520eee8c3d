package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"housing/config"
	"housing/internal/domain/entity"
	"housing/internal/domain/repository"
	"housing/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestJWTConfig(accessTTL, refreshTTL time.Duration) *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			Secret:     base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
	}
}

// --- in-memory store fakes ---

type fakeRefreshStore struct {
	mu      sync.Mutex
	entries map[int64]string
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{entries: make(map[int64]string)}
}

func (s *fakeRefreshStore) Save(_ context.Context, userID int64, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = token

	return nil
}

func (s *fakeRefreshStore) Get(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.entries[userID]
	if !ok {
		return "", repository.ErrRefreshTokenNotFound
	}

	return token, nil
}

func (s *fakeRefreshStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)

	return nil
}

type fakeCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (s *fakeCodeStore) SaveCode(_ context.Context, email, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code

	return nil
}

func (s *fakeCodeStore) GetCode(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[email]
	if !ok {
		return "", repository.ErrCodeNotFound
	}

	return code, nil
}

func (s *fakeCodeStore) DeleteCode(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)

	return nil
}

// expire simulates natural TTL expiry of a pending code.
func (s *fakeCodeStore) expire(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
}

type fakeStatusStore struct {
	mu       sync.Mutex
	verified map[string]bool
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{verified: make(map[string]bool)}
}

func (s *fakeStatusStore) MarkVerified(_ context.Context, email string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verified[email] = true

	return nil
}

func (s *fakeStatusStore) IsVerified(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.verified[email], nil
}

func (s *fakeStatusStore) DeleteVerified(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.verified, email)

	return nil
}

// --- user repository fake ---

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cloned := *user

	return &cloned, nil
}

func (r *fakeUserRepo) FindByLoginID(_ context.Context, loginID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.LoginID == loginID && user.LoginID != "" {
			cloned := *user

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByAuthTypeAndProviderID(_ context.Context, authType entity.AuthType, providerID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.AuthType == authType && user.ProviderID == providerID && providerID != "" {
			cloned := *user

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindLocalByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.AuthType == entity.AuthTypeLocal && user.Email == email && email != "" {
			cloned := *user

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cloned := *user
	r.users[user.ID] = &cloned

	return nil
}

// remove simulates the principal disappearing between issuance and reissue.
func (r *fakeUserRepo) remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// --- transaction fakes ---

type fakeRepoFactory struct {
	userRepo repository.UserRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

type fakeTxManager struct {
	userRepo repository.UserRepository
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{userRepo: m.userRepo})
}

// --- service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type sequenceGenerator struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (g *sequenceGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next >= len(g.codes) {
		return "", fmt.Errorf("sequence exhausted")
	}
	code := g.codes[g.next]
	g.next++

	return code, nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent map[string][]string
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(map[string][]string)}
}

func (s *recordingSender) SendVerificationCode(_ context.Context, to, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[to] = append(s.sent[to], code)

	return nil
}

type fakeOAuthClient struct {
	provider entity.AuthType
	user     *service.OAuthUser
	fetchErr error
}

func (c *fakeOAuthClient) Provider() entity.AuthType {
	return c.provider
}

func (c *fakeOAuthClient) BuildAuthorizationURL(state string) string {
	return "https://example.com/authorize?state=" + state
}

func (c *fakeOAuthClient) FetchUser(_ context.Context, _ string) (*service.OAuthUser, error) {
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}

	return c.user, nil
}
