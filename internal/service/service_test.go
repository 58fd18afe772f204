package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"digitalstore/internal/client"
	"digitalstore/internal/model"
	"digitalstore/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) (userID uint, token string) {
	t.Helper()

	user := &model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)

	tok := &model.SessionToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(tok).Error)

	return user.ID, tok.Token
}

func seedProduct(t *testing.T, db *gorm.DB, p *model.Product) {
	t.Helper()
	require.NoError(t, db.Create(p).Error)
}

func seedOrder(t *testing.T, db *gorm.DB, o *model.Order) {
	t.Helper()
	require.NoError(t, db.Create(o).Error)
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// fakeStore records every fetch so tests can assert that denied
// requests never reach the object store.
type fakeStore struct {
	mu      sync.Mutex
	calls   []string
	objects map[string]string
	err     error
}

var _ storage.ObjectStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (f *fakeStore) Download(ctx context.Context, key string) (*storage.Object, error) {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &storage.Object{
		Body:          io.NopCloser(strings.NewReader(data)),
		ContentLength: int64(len(data)),
	}, nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
