package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/ckd-predict/internal/model"
)

// Storage keys. They mirror the browser local-storage layout of the web client.
const (
	KeyUser       = "user"
	KeyAdmin      = "admin"
	KeyUserToken  = "token"
	KeyAdminToken = "adminToken"
)

// encodeAccount serializes an account for storage.
func encodeAccount(account model.Account) (string, error) {
	data, err := json.Marshal(account)
	if err != nil {
		return "", fmt.Errorf("failed to encode account: %w", err)
	}
	return string(data), nil
}

// decodeAccount parses a stored account. Anything that does not decode to an
// account with an email is reported as absent.
func decodeAccount(raw string) (model.Account, bool) {
	if strings.TrimSpace(raw) == "" {
		return model.Account{}, false
	}

	var account model.Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return model.Account{}, false
	}
	if account.IsZero() {
		return model.Account{}, false
	}
	return account, true
}

// loadAccount reads and decodes key. Read failures and corrupt values resolve to absence.
func (c *Controller) loadAccount(ctx context.Context, key string) (model.Account, bool) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Debug("session storage read failed", "key", key, "error", err)
		return model.Account{}, false
	}
	if !ok {
		return model.Account{}, false
	}

	account, ok := decodeAccount(raw)
	if !ok {
		c.logger.Debug("ignoring corrupt persisted identity", "key", key)
	}
	return account, ok
}

// persistIdentity writes the account and token under the given keys.
// An empty token removes any previously stored token.
func (c *Controller) persistIdentity(ctx context.Context, accountKey, tokenKey string, account model.Account, token model.Token) error {
	encoded, err := encodeAccount(account)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, accountKey, encoded); err != nil {
		return err
	}
	if token == "" {
		return c.store.Remove(ctx, tokenKey)
	}
	return c.store.Set(ctx, tokenKey, string(token))
}

// removeKeys deletes every key, attempting all of them and returning the first failure.
func (c *Controller) removeKeys(ctx context.Context, keys ...string) error {
	var firstErr error
	for _, key := range keys {
		if err := c.store.Remove(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
