package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"authsvc/internal/domain/entity"
	"authsvc/internal/domain/repository"
	"authsvc/internal/domain/service"
	"authsvc/internal/infra/auth"
	"authsvc/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryUserRepository is an in-memory UserRepository with the same
// uniqueness semantics as the Postgres implementation.
type memoryUserRepository struct {
	mu      sync.Mutex
	byName  map[string]*entity.User
	findErr error
	saveErr error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{byName: make(map[string]*entity.User)}
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}

	user, ok := r.byName[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.byName {
		if user.ID == id {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}
	if _, exists := r.byName[user.Username]; exists {
		return repository.ErrUsernameTaken
	}

	user.ID = uuid.New()
	copied := *user
	r.byName[user.Username] = &copied

	return nil
}

// racingRepo reports every username lookup as a miss while delegating
// writes, so a duplicate insert reaches the store's uniqueness check the way
// a concurrent registration would.
type racingRepo struct {
	inner *memoryUserRepository
}

func (r *racingRepo) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *racingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *racingRepo) Create(ctx context.Context, user *entity.User) error {
	return r.inner.Create(ctx, user)
}

func newFastHasher() service.PasswordHasher {
	return auth.NewBcryptHasherWithCost(bcrypt.MinCost)
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.AuthEvent
	err    error
}

func (p *recordingPublisher) PublishAuthEvent(_ context.Context, event *service.AuthEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}

	return out
}

// failingTokenService always errors, for exercising issue failures.
type failingTokenService struct{}

func (failingTokenService) Issue(*service.Claims) (string, error) {
	return "", errAlwaysFails
}

func (failingTokenService) Verify(string) (*service.Claims, error) {
	return nil, errAlwaysFails
}

var errAlwaysFails = errFake("token service unavailable")

type errFake string

func (e errFake) Error() string { return string(e) }

type testFixture struct {
	service   usecase.AuthUsecase
	repo      *memoryUserRepository
	publisher *recordingPublisher
	tokens    service.TokenService
}

func newTestFixture(t interface{ Fatal(args ...any) }) *testFixture {
	repo := newMemoryUserRepository()
	publisher := &recordingPublisher{}
	tokens, err := auth.NewJWTServiceWithClock("unit-test-secret", nil)
	if err != nil {
		t.Fatal(err)
	}

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     repo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokens,
		Publisher:    publisher,
		Logger:       newDiscardLogger(),
	})

	return &testFixture{service: svc, repo: repo, publisher: publisher, tokens: tokens}
}
