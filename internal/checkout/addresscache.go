package checkout

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/anitasharma/craftsbyanita/internal/models"
)

// KeyValue is the persistence surface the address cache writes through.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// AddressCache remembers the last shipping address per account so the form
// can be pre-filled on the next checkout. It fails open: a broken store or
// corrupt value means "no saved address", never a blocked checkout.
type AddressCache struct {
	KV KeyValue
}

func addressKey(email string) string {
	return "address:" + strings.ToLower(email)
}

// Load reads the saved address for an account, if any.
func (c *AddressCache) Load(email string) (models.SavedAddress, bool) {
	var addr models.SavedAddress

	value, found, err := c.KV.Get(addressKey(email))
	if err != nil {
		slog.Warn("Address cache read failed, continuing without saved address", "error", err)
		return addr, false
	}
	if !found {
		return addr, false
	}

	if err := json.Unmarshal([]byte(value), &addr); err != nil {
		slog.Warn("Address cache entry is corrupt, ignoring it", "error", err)
		return models.SavedAddress{}, false
	}
	return addr, true
}

// Save overwrites the saved address for an account. Last write wins; a
// write failure is logged and swallowed so it never aborts a checkout.
func (c *AddressCache) Save(email string, addr models.SavedAddress) {
	value, err := json.Marshal(addr)
	if err != nil {
		slog.Warn("Failed to encode address for cache", "error", err)
		return
	}
	if err := c.KV.Set(addressKey(email), string(value)); err != nil {
		slog.Warn("Address cache write failed", "error", err)
	}
}
