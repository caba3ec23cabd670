package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/Veraticus/ckd-predict/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = model.Account{Name: "Alice", Email: "a@x.com"}
	root  = model.Account{Name: "Root", Email: "root@x.com"}
)

func newTestController(t *testing.T, seed map[string]string) (*Controller, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStoreWith(seed)
	c := New(store)
	c.Initialize(context.Background())
	return c, store
}

func batchResult() *model.PredictionResult {
	return model.NewBatchResult(model.BatchResult{
		FileName: "patients.csv",
		Records: []model.RecordResult{
			{ID: 1, Class: model.ClassCKD, Confidence: 91.2},
			{ID: 2, Class: model.ClassNotCKD, Confidence: 77.05},
		},
		Summary: model.BatchSummary{Total: 2, Positive: 1, Negative: 1},
	})
}

func singleResult() *model.PredictionResult {
	return model.NewSingleResult(model.SingleResult{
		Class:      model.ClassNotCKD,
		Confidence: 82.5,
		Input:      model.NewPatientRecord(),
	})
}

func TestInitialize_EmptyStorage(t *testing.T) {
	c, store := newTestController(t, nil)

	assert.Equal(t, model.ViewLogin, c.View())
	assert.True(t, c.Identity().IsAnonymous())
	assert.Empty(t, c.Token())
	assert.Nil(t, c.Results())
	assert.Empty(t, store.Snapshot(), "initialize must not write")
}

func TestInitialize_PersistedUser(t *testing.T) {
	c, _ := newTestController(t, map[string]string{
		KeyUser:      `{"name":"Alice","email":"a@x.com"}`,
		KeyUserToken: "user-token",
	})

	assert.Equal(t, model.ViewSinglePrediction, c.View())
	assert.Equal(t, model.UserIdentity(alice), c.Identity())
	assert.Equal(t, model.Token("user-token"), c.Token())
}

func TestInitialize_AdminTakesPrecedence(t *testing.T) {
	seed := map[string]string{
		KeyUser:       `{"name":"Alice","email":"a@x.com"}`,
		KeyUserToken:  "user-token",
		KeyAdmin:      `{"name":"Root","email":"root@x.com"}`,
		KeyAdminToken: "admin-token",
	}
	c, store := newTestController(t, seed)

	assert.Equal(t, model.AdminIdentity(root), c.Identity())
	assert.Equal(t, model.ViewAdminDashboard, c.View())
	assert.Equal(t, model.Token("admin-token"), c.Token(), "user token must not be active for an admin")
	assert.Equal(t, seed, store.Snapshot(), "initialize is read-only")
}

func TestInitialize_CorruptEntriesResolveToAbsence(t *testing.T) {
	tests := []struct {
		seed     map[string]string
		name     string
		wantRole model.Role
		wantView model.View
	}{
		{
			name:     "invalid json user",
			seed:     map[string]string{KeyUser: "{not json"},
			wantRole: model.RoleAnonymous,
			wantView: model.ViewLogin,
		},
		{
			name:     "literal undefined",
			seed:     map[string]string{KeyUser: "undefined", KeyAdmin: "null"},
			wantRole: model.RoleAnonymous,
			wantView: model.ViewLogin,
		},
		{
			name:     "account without email",
			seed:     map[string]string{KeyAdmin: `{"name":"Root"}`},
			wantRole: model.RoleAnonymous,
			wantView: model.ViewLogin,
		},
		{
			name:     "corrupt admin falls back to valid user",
			seed:     map[string]string{KeyAdmin: `[1,2,3]`, KeyUser: `{"name":"Alice","email":"a@x.com"}`},
			wantRole: model.RoleUser,
			wantView: model.ViewSinglePrediction,
		},
		{
			name:     "empty string",
			seed:     map[string]string{KeyUser: "  "},
			wantRole: model.RoleAnonymous,
			wantView: model.ViewLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t, tt.seed)
			assert.Equal(t, tt.wantRole, c.Identity().Role)
			assert.Equal(t, tt.wantView, c.View())
		})
	}
}

func TestInitialize_StoreReadFailureIsAbsence(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), getErr: errors.New("disk I/O error")}
	c := New(store)

	assert.NotPanics(t, func() { c.Initialize(context.Background()) })
	assert.True(t, c.Identity().IsAnonymous())
	assert.Equal(t, model.ViewLogin, c.View())
}

func TestLogin_PersistsAndSelectsSinglePrediction(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t, nil)

	require.NoError(t, c.SwitchAuthView(model.ViewSignup))
	require.NoError(t, c.Signup(ctx, alice, "tok"))

	assert.Equal(t, model.UserIdentity(alice), c.Identity())
	assert.Equal(t, model.ViewSinglePrediction, c.View())
	assert.Equal(t, model.TabSinglePrediction, c.Tab())
	assert.Equal(t, model.Token("tok"), c.Token())

	snapshot := store.Snapshot()
	assert.JSONEq(t, `{"name":"Alice","email":"a@x.com"}`, snapshot[KeyUser])
	assert.Equal(t, "tok", snapshot[KeyUserToken])

	// A reload sees the same identity.
	reloaded := New(store)
	reloaded.Initialize(ctx)
	assert.Equal(t, c.Identity(), reloaded.Identity())
	assert.Equal(t, c.Token(), reloaded.Token())
}

func TestLogin_ReplacesPreviousIdentityAndClearsResults(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)

	require.NoError(t, c.Login(ctx, alice, "t1"))
	require.NoError(t, c.SelectTab(model.TabCSVBatch))
	require.NoError(t, c.SetResults(batchResult()))

	bob := model.Account{Name: "Bob", Email: "b@x.com"}
	require.NoError(t, c.Login(ctx, bob, "t2"))

	assert.Equal(t, model.UserIdentity(bob), c.Identity())
	assert.Nil(t, c.Results())
	assert.Equal(t, model.ViewSinglePrediction, c.View())
}

func TestLogin_EmptyAccountRejected(t *testing.T) {
	c, store := newTestController(t, nil)

	err := c.Login(context.Background(), model.Account{Name: "nobody"}, "tok")
	require.ErrorIs(t, err, ErrEmptyAccount)
	assert.True(t, c.Identity().IsAnonymous())
	assert.Empty(t, store.Snapshot())
}

func TestLoginLogout_RestoresInitialState(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t, nil)
	initial := c.State()

	for range 3 {
		require.NoError(t, c.Login(ctx, alice, "tok"))
		require.NoError(t, c.SelectTab(model.TabCSVBatch))
		require.NoError(t, c.SetResults(batchResult()))
		require.NoError(t, c.Logout(ctx))

		assert.Equal(t, initial, c.State())
		assert.Empty(t, store.Snapshot())
	}
}

func TestLogout_AlwaysRemovesUserKeys(t *testing.T) {
	ctx := context.Background()
	seed := map[string]string{
		KeyUser:       `{"name":"Alice","email":"a@x.com"}`,
		KeyUserToken:  "user-token",
		KeyAdmin:      `{"name":"Root","email":"root@x.com"}`,
		KeyAdminToken: "admin-token",
	}

	// Even when the active identity is the admin, logout clears the user keys only.
	c, store := newTestController(t, seed)
	require.NoError(t, c.Logout(ctx))

	snapshot := store.Snapshot()
	assert.NotContains(t, snapshot, KeyUser)
	assert.NotContains(t, snapshot, KeyUserToken)
	assert.Contains(t, snapshot, KeyAdmin)
	assert.Contains(t, snapshot, KeyAdminToken)
	assert.True(t, c.Identity().IsAnonymous())
	assert.Equal(t, model.ViewLogin, c.View())

	// Anonymous logout with stale keys still removes them.
	c2, store2 := newTestController(t, map[string]string{KeyUserToken: "orphan"})
	require.NoError(t, c2.Logout(ctx))
	assert.Empty(t, store2.Snapshot())
}

func TestAdminLogout(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t, nil)

	require.NoError(t, c.AdminLogin(ctx, root, "admin-token"))
	assert.Equal(t, model.ViewAdminDashboard, c.View())
	assert.Equal(t, model.Token("admin-token"), c.Token())

	require.NoError(t, c.AdminLogout(ctx))

	assert.Equal(t, model.ViewLogin, c.View())
	assert.True(t, c.Identity().IsAnonymous())
	assert.Empty(t, c.Token())
	snapshot := store.Snapshot()
	assert.NotContains(t, snapshot, KeyAdmin)
	assert.NotContains(t, snapshot, KeyAdminToken)
}

func TestAdminLogout_RemovesAdminKeysIndependentOfState(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t, map[string]string{
		KeyUser:       `{"name":"Alice","email":"a@x.com"}`,
		KeyAdminToken: "stale",
	})
	require.True(t, c.Identity().IsUser())

	require.NoError(t, c.AdminLogout(ctx))

	snapshot := store.Snapshot()
	assert.NotContains(t, snapshot, KeyAdminToken)
	assert.Contains(t, snapshot, KeyUser)
}

func TestAdminLogin_DropsStaleUserCredentials(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t, nil)

	require.NoError(t, c.Login(ctx, alice, "user-token"))
	require.NoError(t, c.AdminSignup(ctx, root, "admin-token"))

	assert.Equal(t, model.Token("admin-token"), c.Token())
	snapshot := store.Snapshot()
	assert.NotContains(t, snapshot, KeyUser)
	assert.NotContains(t, snapshot, KeyUserToken)

	require.NoError(t, c.Login(ctx, alice, "user-token-2"))
	assert.Equal(t, model.Token("user-token-2"), c.Token())
	snapshot = store.Snapshot()
	assert.NotContains(t, snapshot, KeyAdmin)
	assert.NotContains(t, snapshot, KeyAdminToken)
}

func TestLogin_EmptyTokenRemovesStoredToken(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t, map[string]string{KeyUserToken: "old"})

	require.NoError(t, c.Login(ctx, alice, ""))
	assert.NotContains(t, store.Snapshot(), KeyUserToken)
	assert.Empty(t, c.Token())
}

func TestSetResults_RestoresPreviousTab(t *testing.T) {
	ctx := context.Background()

	for _, tab := range []model.Tab{model.TabSinglePrediction, model.TabCSVBatch} {
		t.Run(tab.String(), func(t *testing.T) {
			c, _ := newTestController(t, nil)
			require.NoError(t, c.Login(ctx, alice, "tok"))
			require.NoError(t, c.SelectTab(tab))

			require.NoError(t, c.SetResults(singleResult()))
			assert.Equal(t, model.ViewResults, c.View())

			require.NoError(t, c.SetResults(nil))
			assert.Equal(t, tab, c.Tab())
			assert.Equal(t, tab.View(), c.View())
		})
	}
}

func TestScenario_BatchResultsReturnToCSVTab(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)
	require.NoError(t, c.Login(ctx, alice, "tok"))

	require.NoError(t, c.SelectTab(model.TabCSVBatch))
	require.NoError(t, c.SetResults(batchResult()))
	assert.Equal(t, model.ViewResults, c.View())

	require.NoError(t, c.SetResults(nil))
	assert.Equal(t, model.ViewCSVBatch, c.View())
}

func TestSelectTab(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)
	require.NoError(t, c.Login(ctx, alice, "tok"))

	// No pending results: switching tabs leaves results unset.
	require.NoError(t, c.SelectTab(model.TabCSVBatch))
	assert.Nil(t, c.Results())
	assert.Equal(t, model.ViewCSVBatch, c.View())

	// Pending results are dismissed by a tab switch, even to the same tab.
	require.NoError(t, c.SetResults(batchResult()))
	require.NoError(t, c.SelectTab(model.TabCSVBatch))
	assert.Nil(t, c.Results())
	assert.Equal(t, model.ViewCSVBatch, c.View())

	require.ErrorIs(t, c.SelectTab(model.Tab(7)), ErrInvalidTransition)
	assert.Equal(t, model.TabCSVBatch, c.Tab())
}

func TestGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous cannot select tab or set results", func(t *testing.T) {
		c, _ := newTestController(t, nil)
		require.ErrorIs(t, c.SelectTab(model.TabCSVBatch), ErrInvalidTransition)
		require.ErrorIs(t, c.SetResults(singleResult()), ErrInvalidTransition)
		assert.Equal(t, model.ViewLogin, c.View())
	})

	t.Run("admin cannot select tab or switch auth view", func(t *testing.T) {
		c, _ := newTestController(t, nil)
		require.NoError(t, c.AdminLogin(ctx, root, "t"))
		require.ErrorIs(t, c.SelectTab(model.TabCSVBatch), ErrInvalidTransition)
		require.ErrorIs(t, c.SetResults(singleResult()), ErrInvalidTransition)
		require.ErrorIs(t, c.SwitchAuthView(model.ViewSignup), ErrInvalidTransition)
		assert.Equal(t, model.ViewAdminDashboard, c.View())
	})

	t.Run("user cannot switch auth view", func(t *testing.T) {
		c, _ := newTestController(t, nil)
		require.NoError(t, c.Login(ctx, alice, "t"))
		require.ErrorIs(t, c.SwitchAuthView(model.ViewAdminLogin), ErrInvalidTransition)
		assert.Equal(t, model.ViewSinglePrediction, c.View())
	})

	t.Run("auth view must be a pre-auth screen", func(t *testing.T) {
		c, _ := newTestController(t, nil)
		require.ErrorIs(t, c.SwitchAuthView(model.ViewResults), ErrInvalidTransition)
		assert.Equal(t, model.ViewLogin, c.View())
	})
}

func TestSwitchAuthView_FullyConnected(t *testing.T) {
	authViews := []model.View{model.ViewLogin, model.ViewSignup, model.ViewAdminLogin, model.ViewAdminSignup}
	c, store := newTestController(t, nil)

	for _, from := range authViews {
		for _, to := range authViews {
			require.NoError(t, c.SwitchAuthView(from))
			require.NoError(t, c.SwitchAuthView(to))
			assert.Equal(t, to, c.View())
		}
	}
	assert.Empty(t, store.Snapshot(), "switching screens has no side effects")
}

func TestPersistenceFailureKeepsInMemoryTransition(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), setErr: errors.New("read-only database")}
	c := New(store)
	c.Initialize(context.Background())

	err := c.Login(context.Background(), alice, "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only database")
	assert.Equal(t, model.UserIdentity(alice), c.Identity())
	assert.Equal(t, model.ViewSinglePrediction, c.View())
}

func TestRandomSequences_EndInLoginAfterLogouts(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for run := range 50 {
		c, store := newTestController(t, nil)
		initial := c.State()

		for range 30 {
			switch rng.Intn(9) {
			case 0:
				_ = c.Login(ctx, alice, "u")
			case 1:
				_ = c.Signup(ctx, alice, "u")
			case 2:
				_ = c.AdminLogin(ctx, root, "a")
			case 3:
				_ = c.AdminSignup(ctx, root, "a")
			case 4:
				_ = c.SelectTab(model.Tab(rng.Intn(2)))
			case 5:
				_ = c.SetResults(batchResult())
			case 6:
				_ = c.SetResults(nil)
			case 7:
				_ = c.SwitchAuthView(model.View(rng.Intn(4)))
			case 8:
				_ = c.Logout(ctx)
			}

			// Never both identities persisted after a transition.
			snapshot := store.Snapshot()
			_, hasUser := snapshot[KeyUser]
			_, hasAdmin := snapshot[KeyAdmin]
			assert.False(t, hasUser && hasAdmin, "run %d: both identities persisted", run)
		}

		require.NoError(t, c.Logout(ctx))
		require.NoError(t, c.AdminLogout(ctx))
		assert.Equal(t, initial, c.State(), "run %d", run)
		assert.Empty(t, store.Snapshot(), "run %d", run)
	}
}

func TestController_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(ctx, storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	c := New(store)
	c.Initialize(ctx)
	require.NoError(t, c.AdminLogin(ctx, root, "admin-token"))

	reloaded := New(store)
	reloaded.Initialize(ctx)
	assert.Equal(t, model.AdminIdentity(root), reloaded.Identity())
	assert.Equal(t, model.Token("admin-token"), reloaded.Token())

	require.NoError(t, reloaded.AdminLogout(ctx))
	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

// failingStore injects errors into a MemoryStore.
type failingStore struct {
	*storage.MemoryStore
	getErr error
	setErr error
}

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}
