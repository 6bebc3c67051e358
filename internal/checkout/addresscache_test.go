package checkout

import (
	"errors"
	"testing"

	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockKV implements KeyValue for testing
type MockKV struct {
	data   map[string]string
	getErr error
	setErr error
}

func newMockKV() *MockKV {
	return &MockKV{data: make(map[string]string)}
}

func (m *MockKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MockKV) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func testAddress() models.SavedAddress {
	return models.SavedAddress{
		Phone:   "+91 98765 43210",
		Street:  "14 MG Road",
		City:    "Kochi",
		State:   "Kerala",
		ZipCode: "682016",
		Country: "India",
	}
}

func TestAddressCache_RoundTrip(t *testing.T) {
	cache := &AddressCache{KV: newMockKV()}

	cache.Save("Priya@Example.com", testAddress())
	// Lookup is case-insensitive on the account email.
	got, ok := cache.Load("priya@example.com")

	require.True(t, ok)
	assert.Equal(t, testAddress(), got, "every field must round-trip exactly")
}

func TestAddressCache_LastWriteWins(t *testing.T) {
	cache := &AddressCache{KV: newMockKV()}

	cache.Save("priya@example.com", testAddress())
	updated := testAddress()
	updated.Street = "22 Marine Drive"
	cache.Save("priya@example.com", updated)

	got, ok := cache.Load("priya@example.com")
	require.True(t, ok)
	assert.Equal(t, "22 Marine Drive", got.Street)
}

func TestAddressCache_AbsentForUnknownAccount(t *testing.T) {
	cache := &AddressCache{KV: newMockKV()}

	_, ok := cache.Load("nobody@example.com")

	assert.False(t, ok)
}

func TestAddressCache_CorruptEntryFailsOpen(t *testing.T) {
	kv := newMockKV()
	kv.data["address:priya@example.com"] = "{not json"
	cache := &AddressCache{KV: kv}

	got, ok := cache.Load("priya@example.com")

	assert.False(t, ok)
	assert.Equal(t, models.SavedAddress{}, got)
}

func TestAddressCache_StorageErrorsFailOpen(t *testing.T) {
	kv := newMockKV()
	kv.getErr = errors.New("storage unavailable")
	kv.setErr = errors.New("storage unavailable")
	cache := &AddressCache{KV: kv}

	// Neither call may panic or surface the error; checkout goes on.
	cache.Save("priya@example.com", testAddress())
	_, ok := cache.Load("priya@example.com")

	assert.False(t, ok)
}
