package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsBody = `{"totalUsers":12,"totalPredictions":340,"activeSessions":3}`

func TestClient_StatsCachedPerToken(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/admin/stats",
		func(req *http.Request) (*http.Response, error) {
			assert.Contains(t, req.Header.Get("Authorization"), "Bearer ")
			return httpmock.NewStringResponse(http.StatusOK, statsBody), nil
		})

	c := newTestClient(t, time.Minute)
	ctx := context.Background()

	stats, err := c.Stats(ctx, "adm-1")
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{TotalUsers: 12, TotalPredictions: 340, ActiveSessions: 3}, stats)

	_, err = c.Stats(ctx, "adm-1")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	_, err = c.Stats(ctx, "adm-2")
	require.NoError(t, err)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())

	c.Invalidate("adm-1")
	_, err = c.Stats(ctx, "adm-1")
	require.NoError(t, err)
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestClient_StatsWithoutCache(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/admin/stats",
		httpmock.NewStringResponder(http.StatusOK, statsBody))

	c := newTestClient(t, 0)
	for range 3 {
		_, err := c.Stats(context.Background(), "adm-1")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
	c.Invalidate("adm-1")
}

func TestClient_StatsErrorNotCached(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/admin/stats",
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"message":"Admin access required"}`))

	c := newTestClient(t, time.Minute)
	for range 2 {
		_, err := c.Stats(context.Background(), "adm-1")
		require.Error(t, err)
	}
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestClient_Users(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/admin/users",
		httpmock.NewStringResponder(http.StatusOK, `{"users":[
			{"name":"Ada","email":"ada@example.com","created_at":"Tue, 03 Jun 2025 10:15:00 GMT"},
			{"name":"Bob","email":"bob@example.com","created_at":"2025-06-04T08:00:00.123456"},
			{"name":"Eve","email":"eve@example.com","created_at":"yesterday"}
		]}`))

	c := newTestClient(t, time.Minute)
	users, err := c.Users(context.Background(), "adm-1")
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "Ada", users[0].Name)
	assert.Equal(t, 2025, users[0].CreatedAt.Year())
	assert.Equal(t, time.June, users[1].CreatedAt.Month())
	assert.True(t, users[2].CreatedAt.IsZero())

	_, err = c.Users(context.Background(), "adm-1")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_UsersCacheIsolatedFromCaller(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/api/admin/users",
		httpmock.NewStringResponder(http.StatusOK, `{"users":[{"name":"Ada","email":"ada@example.com"}]}`))

	c := newTestClient(t, time.Minute)
	ctx := context.Background()

	first, err := c.Users(ctx, "adm-1")
	require.NoError(t, err)
	first[0].Name = "Mallory"

	second, err := c.Users(ctx, "adm-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", second[0].Name)
	second[0].Email = "changed@example.com"

	third, err := c.Users(ctx, "adm-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", third[0].Email)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}
