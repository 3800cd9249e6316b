// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dbooster/trustd/config"
	"github.com/dbooster/trustd/internal/infra/dependency"
	"github.com/dbooster/trustd/internal/integration/persistence/model"
	"github.com/dbooster/trustd/test/integration/mock"
)

const testTokenSecret = "integration-test-token-secret"

// TestContext holds the test state for each scenario.
type TestContext struct {
	server      *httptest.Server
	client      *http.Client
	rateMock    *mock.RateLimitAuthority
	sessionMock *mock.SessionAuthority
	breachMock  *mock.BreachOracle
	redis       *miniredis.Miniredis
	redisClient *redis.Client
	db          *gorm.DB

	status int
	body   map[string]any

	sessionID    string
	sessionToken string
}

type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil {
			tc.teardown()
		}
		return ctx, nil
	})

	registerSecuritySteps(ctx)
}

// newTestContext builds a full application stack against mocked remote
// dependencies: in-memory SQLite for the audit store, miniredis for
// validation records, and HTTP doubles for the authorities and the oracle.
func newTestContext() (*TestContext, error) {
	tc := &TestContext{
		client:      &http.Client{Timeout: 10 * time.Second},
		rateMock:    mock.NewRateLimitAuthority(),
		sessionMock: mock.NewSessionAuthority(testTokenSecret),
		breachMock:  mock.NewBreachOracle(),
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, err
	}
	tc.redis = mr
	tc.redisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.SecurityEventModel{}); err != nil {
		return nil, err
	}
	tc.db = db

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		BreachCheck: config.BreachCheckConfig{
			BaseURL:   tc.breachMock.URL(),
			Timeout:   5 * time.Second,
			UserAgent: "trustd-integration-test",
		},
		Authority: config.AuthorityConfig{
			RateLimitURL: tc.rateMock.URL(),
			SessionURL:   tc.sessionMock.URL(),
			Timeout:      5 * time.Second,
			TokenSecret:  testTokenSecret,
		},
		Session: config.SessionConfig{
			Duration:       2 * time.Hour,
			StaleRecordAge: 3 * time.Hour,
		},
	}

	injector := dependency.NewInjector(cfg, db, tc.redisClient, func() bool { return true })
	tc.server = httptest.NewServer(injector.Router.Setup("test"))

	return tc, nil
}

func (tc *TestContext) teardown() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.redisClient != nil {
		tc.redisClient.Close()
	}
	if tc.redis != nil {
		tc.redis.Close()
	}
	tc.rateMock.Close()
	tc.sessionMock.Close()
	tc.breachMock.Close()
}
