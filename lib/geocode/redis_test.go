package geocode

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fakeStore struct {
	entries map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string][]byte{}}
}

func (f *fakeStore) Get(key string) ([]byte, bool, error) {
	b, ok := f.entries[key]
	return b, ok, nil
}

func (f *fakeStore) Set(key string, data []byte, _ time.Duration) error {
	f.entries[key] = data
	return nil
}

func (f *fakeStore) Ready() bool {
	return true
}

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) Lookup(ctx context.Context, query string) ([]Result, error) {
	args := m.Called(ctx, query)
	results, _ := args.Get(0).([]Result)
	return results, args.Error(1)
}

func (m *mockOracle) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

func TestCachedLookupHitsBackendOnce(t *testing.T) {
	backendResults := []Result{{PlaceName: "Boddington, Western Australia", Latitude: -32.8, Longitude: 116.4, Confidence: 0.5, Exact: true}}

	oracle := &mockOracle{}
	oracle.On("Lookup", mock.Anything, "boddington gold").Return(backendResults, nil).Once()

	client := &cached{inner: oracle, store: newFakeStore()}

	first, err := client.Lookup(context.Background(), "boddington gold")
	assert.Nil(t, err)
	assert.Equal(t, backendResults, first)

	second, err := client.Lookup(context.Background(), "boddington gold")
	assert.Nil(t, err)
	assert.Equal(t, backendResults, second)

	oracle.AssertExpectations(t)
}

func TestCachedLookupCachesEmptyResponses(t *testing.T) {
	oracle := &mockOracle{}
	oracle.On("Lookup", mock.Anything, "nowhere").Return([]Result{}, nil).Once()

	client := &cached{inner: oracle, store: newFakeStore()}

	for i := 0; i < 3; i++ {
		results, err := client.Lookup(context.Background(), "nowhere")
		assert.Nil(t, err)
		assert.Empty(t, results)
	}

	oracle.AssertExpectations(t)
}

func TestCachedLookupDoesNotCacheErrors(t *testing.T) {
	oracle := &mockOracle{}
	oracle.On("Lookup", mock.Anything, "flaky").Return(nil, ErrUnavailable).Twice()

	client := &cached{inner: oracle, store: newFakeStore()}

	for i := 0; i < 2; i++ {
		_, err := client.Lookup(context.Background(), "flaky")
		assert.ErrorIs(t, err, ErrUnavailable)
	}

	oracle.AssertExpectations(t)
}
