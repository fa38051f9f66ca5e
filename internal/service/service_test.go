package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

const testSecret = "test-secret-key-with-at-least-32-bytes"

var archiveTime = time.Date(2026, time.March, 14, 18, 30, 0, 0, time.UTC)

// testEnv is a full server over a temp SQLite database.
type testEnv struct {
	store     *sqlite.SQLiteStore
	metrics   *metrics.Metrics
	redis     *miniredis.Miniredis
	publisher *recordingPublisher
	jwt       *auth.JWTManager

	users    *apiconnect.UserServiceClient
	ledger   *apiconnect.LedgerServiceClient
	groups   *apiconnect.GroupServiceClient
	journeys *apiconnect.JourneyServiceClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	env := &testEnv{
		store:     store,
		metrics:   metrics.New(),
		redis:     mr,
		publisher: &recordingPublisher{},
		jwt:       auth.NewJWTManager(testSecret, time.Hour),
	}
	ledgerCache := cache.New(rdb, time.Minute)

	interceptors := connect.WithInterceptors(
		env.metrics.Interceptor(),
		middleware.Identify(auth.NewDeviceAuthenticator(env.jwt, "default-user")),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store, env.jwt), interceptors))
	mux.Handle(apiconnect.NewLedgerServiceHandler(NewLedgerService(store, ledgerCache, env.metrics), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptors))
	mux.Handle(apiconnect.NewJourneyServiceHandler(
		NewJourneyService(store, ledgerCache, env.metrics,
			WithClock(func() time.Time { return archiveTime }),
			WithPublisher(env.publisher),
		),
		interceptors,
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env.users = apiconnect.NewUserServiceClient(server.Client(), server.URL)
	env.ledger = apiconnect.NewLedgerServiceClient(server.Client(), server.URL)
	env.groups = apiconnect.NewGroupServiceClient(server.Client(), server.URL)
	env.journeys = apiconnect.NewJourneyServiceClient(server.Client(), server.URL)
	return env
}

// as sends the request on behalf of userID.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(auth.UserIDHeader, userID)
	return req
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []*events.JourneyArchived
}

func (p *recordingPublisher) PublishJourneyArchived(_ context.Context, msg *events.JourneyArchived) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []*events.JourneyArchived {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*events.JourneyArchived(nil), p.messages...)
}
