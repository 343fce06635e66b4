package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"producer-payout.backend/internal/config"
	plog "producer-payout.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origMigrateDB := migrateDB
	origConnectMongo := connectMongo
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		migrateDB = origMigrateDB
		connectMongo = origConnectMongo
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) {
		dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	}
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Store: config.StoreConfig{Driver: config.StoreDriverPostgres},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "producer_payout",
			SSLMode:  "disable",
		},
		Mongo: config.MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "producer_payout",
			Collection: "producers",
		},
		Redis: config.RedisConfig{
			URL: "redis://localhost:6379",
		},
		JWT: config.JWTConfig{
			Secret: "secret",
			Expiry: time.Hour,
		},
		Razorpay: config.RazorpayConfig{
			WebhookSecret: "whsec",
			Timeout:       time.Second,
		},
		Jobs: config.JobsConfig{
			DeadLetterMonitorInterval: time.Hour,
		},
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	initRedis = func(string, string) error { return errors.New("redis down") }

	err := runMainProcess()
	require.ErrorContains(t, err, "redis")
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	err := runMainProcess()
	require.ErrorContains(t, err, "database")
}

func TestRunMainProcess_MigrationError(t *testing.T) {
	withMainHooks(t)
	migrateDB = func(*gorm.DB) error { return errors.New("bad migration") }

	err := runMainProcess()
	require.ErrorContains(t, err, "migrate")
}

func TestRunMainProcess_UnknownStoreDriver(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Store.Driver = "dynamo"
		return cfg
	}

	err := runMainProcess()
	require.ErrorContains(t, err, "unknown store driver")
}

func TestRunMainProcess_MongoConnectError(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Store.Driver = config.StoreDriverMongo
		return cfg
	}
	connectMongo = func(context.Context, string) (*mongo.Client, error) {
		return nil, errors.New("no mongo")
	}

	err := runMainProcess()
	require.ErrorContains(t, err, "mongo")
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	runServer = func(*http.Server) error { return errors.New("listen failed") }

	err := runMainProcess()
	require.ErrorContains(t, err, "listen failed")
}

func TestRunMainProcess_WiresRouter(t *testing.T) {
	withMainHooks(t)

	var srv *http.Server
	runServer = func(s *http.Server) error {
		srv = s
		return http.ErrServerClosed
	}

	require.NoError(t, runMainProcess())
	require.NotNil(t, srv)
	assert.Equal(t, ":18080", srv.Addr)

	serve := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(`{}`)))
		return w
	}

	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/v1/webhooks/razorpay").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/v1/transfers").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/v1/admin/reconciliation-failures").Code)
}
