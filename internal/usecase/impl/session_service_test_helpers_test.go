package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warden/config"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/repository"
	"warden/internal/domain/service"
	"warden/internal/infra/auth"
	"warden/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Token: config.TokenConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "session_test_access_secret"
	cfg.SecretKey.Refresh = "session_test_refresh_secret"

	return cfg
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memoryPrincipalRepo is an in-memory PrincipalRepository. Every method holds
// the lock for its whole duration, which gives RotateRefreshTokenHash the same
// compare-and-swap behavior as the conditional UPDATE.
type memoryPrincipalRepo struct {
	mu         sync.Mutex
	principals map[uuid.UUID]*entity.Principal
}

func newMemoryPrincipalRepo() *memoryPrincipalRepo {
	return &memoryPrincipalRepo{principals: make(map[uuid.UUID]*entity.Principal)}
}

func (r *memoryPrincipalRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.principals {
		if (username != "" && p.Username == username) || (email != "" && p.Email == email) {
			clone := *p

			return &clone, nil
		}
	}

	return nil, repository.ErrPrincipalNotFound
}

func (r *memoryPrincipalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.principals[id]
	if !ok {
		return nil, repository.ErrPrincipalNotFound
	}
	clone := *p

	return &clone, nil
}

func (r *memoryPrincipalRepo) FindPublicByID(ctx context.Context, id uuid.UUID) (*entity.PublicPrincipal, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return p.Public(), nil
}

func (r *memoryPrincipalRepo) Create(_ context.Context, principal *entity.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.principals {
		if p.Username == principal.Username || p.Email == principal.Email {
			return domainerrors.ErrPrincipalAlreadyExists.WrapMessage("username or email already exists")
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	principal.ID = id
	principal.CreatedAt = now
	principal.UpdatedAt = now

	clone := *principal
	r.principals[id] = &clone

	return nil
}

func (r *memoryPrincipalRepo) UpdateRefreshTokenHash(_ context.Context, id uuid.UUID, hash *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.principals[id]
	if !ok {
		return repository.ErrPrincipalNotFound
	}
	if hash == nil {
		p.RefreshTokenHash = nil
	} else {
		stored := *hash
		p.RefreshTokenHash = &stored
	}

	return nil
}

func (r *memoryPrincipalRepo) RotateRefreshTokenHash(_ context.Context, id uuid.UUID, currentHash, nextHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.principals[id]
	if !ok || p.RefreshTokenHash == nil || *p.RefreshTokenHash != currentHash {
		return repository.ErrRefreshTokenMismatch
	}
	p.RefreshTokenHash = &nextHash

	return nil
}

func (r *memoryPrincipalRepo) storedHash(t *testing.T, id uuid.UUID) *string {
	t.Helper()

	p, err := r.FindByID(context.Background(), id)
	require.NoError(t, err)

	return p.RefreshTokenHash
}

func (r *memoryPrincipalRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.principals)
}

type memoryMediaStore struct {
	mu       sync.Mutex
	uploads  []string
	failFrom service.MediaFolder
}

func (s *memoryMediaStore) Upload(_ context.Context, folder service.MediaFolder, file *service.MediaFile) (string, error) {
	if folder == s.failFrom {
		return "", errors.New("bucket unavailable")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	if _, err := io.Copy(io.Discard, src); err != nil {
		return "", err
	}

	key := string(folder) + "/" + file.Filename
	s.mu.Lock()
	s.uploads = append(s.uploads, key)
	s.mu.Unlock()

	return "https://cdn.example.test/" + key, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*entity.SessionEvent
}

func (p *recordingPublisher) PublishSessionEvent(_ context.Context, event *entity.SessionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []entity.SessionEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]entity.SessionEventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}

func newMediaFile(name, body string) *service.MediaFile {
	return &service.MediaFile{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

// sessionFixture wires the session and guard services to in-memory
// collaborators, the real bcrypt hasher and the real JWT codec.
type sessionFixture struct {
	repo      *memoryPrincipalRepo
	media     *memoryMediaStore
	publisher *recordingPublisher
	clock     *testClock
	tokens    service.TokenService
	session   *sessionService
	guard     *guardService
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens, err := auth.NewJWTServiceWithClock(newTestConfig(), clock.Now)
	require.NoError(t, err)

	repo := newMemoryPrincipalRepo()
	media := &memoryMediaStore{}
	publisher := &recordingPublisher{}
	logger := newDiscardLogger()

	session := NewSessionService(SessionServiceParams{
		PrincipalRepo: repo,
		Hasher:        auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService:  tokens,
		MediaStore:    media,
		Publisher:     publisher,
		Logger:        logger,
	}).(*sessionService)

	guard := NewGuardService(GuardServiceParams{
		PrincipalRepo: repo,
		TokenService:  tokens,
		Logger:        logger,
	}).(*guardService)

	return &sessionFixture{
		repo:      repo,
		media:     media,
		publisher: publisher,
		clock:     clock,
		tokens:    tokens,
		session:   session,
		guard:     guard,
	}
}

func aliceInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FullName: "Alice Liddell",
		Email:    "alice@x.com",
		Username: "alice",
		Password: "p@ss1",
		Avatar:   newMediaFile("alice.png", "avatar-bytes"),
	}
}
