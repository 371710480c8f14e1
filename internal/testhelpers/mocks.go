package testhelpers

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"

	"github.com/beginvegan/backend/internal/fcm"
	"github.com/beginvegan/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockImageStore is a mock implementation of the ImageStore interface
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, dir string, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, dir, file)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// FakeImageStore keeps uploads in memory and records deletions.
type FakeImageStore struct {
	mu      sync.Mutex
	n       int
	Stored  map[string]bool
	Deleted []string
}

func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{Stored: map[string]bool{}}
}

func (f *FakeImageStore) Upload(_ context.Context, dir string, file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	url := fmt.Sprintf("https://bucket.s3.ap-northeast-2.amazonaws.com/%s/%d-%s", dir, f.n, file.Filename)
	f.Stored[url] = true
	return url, nil
}

func (f *FakeImageStore) Delete(_ context.Context, url string) error {
	if !strings.Contains(url, "amazonaws.com/") {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Stored, url)
	f.Deleted = append(f.Deleted, url)
	return nil
}

// MockPushSender is a mock implementation of the PushSender interface
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Send(ctx context.Context, msg fcm.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockTokenValidator is a mock implementation of the middleware's token
// validator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
