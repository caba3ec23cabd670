package api

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/patrickmn/go-cache"
)

// Stats returns the dashboard counters. Results are cached per token.
func (c *Client) Stats(ctx context.Context, token model.Token) (model.DashboardStats, error) {
	key := "stats:" + string(token)
	if cached, ok := c.cached(key); ok {
		if stats, ok := cached.(model.DashboardStats); ok {
			return stats, nil
		}
	}

	var stats model.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", &stats, withToken(token)); err != nil {
		return model.DashboardStats{}, err
	}

	c.store(key, stats)
	return stats, nil
}

// Users returns the registered users. Results are cached per token.
func (c *Client) Users(ctx context.Context, token model.Token) ([]model.UserRecord, error) {
	key := "users:" + string(token)
	if cached, ok := c.cached(key); ok {
		if users, ok := cached.([]model.UserRecord); ok {
			return slices.Clone(users), nil
		}
	}

	var resp struct {
		Users []userPayload `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", &resp, withToken(token)); err != nil {
		return nil, err
	}

	users := make([]model.UserRecord, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, model.UserRecord{
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: parseTimestamp(u.CreatedAt),
		})
	}

	c.store(key, users)
	return slices.Clone(users), nil
}

type userPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// timestampLayouts are the formats the service has been seen to emit for created_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp returns the zero time when raw matches no known layout.
func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Invalidate drops cached dashboard data for token.
func (c *Client) Invalidate(token model.Token) {
	if c.cache == nil {
		return
	}
	c.cache.Delete("stats:" + string(token))
	c.cache.Delete("users:" + string(token))
}

func (c *Client) cached(key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Client) store(key string, value any) {
	if c.cache == nil {
		return
	}
	c.cache.DeleteExpired()
	c.cache.Set(key, value, cache.DefaultExpiration)
}
