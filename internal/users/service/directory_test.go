package service

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingmoments/studio-backend/internal/auth"
	"github.com/weddingmoments/studio-backend/internal/docstore"
	"github.com/weddingmoments/studio-backend/internal/users/domain"
)

type fakeProvisioner struct {
	created []string
	deleted []string
	fail    error
}

func (f *fakeProvisioner) CreateUser(_ context.Context, _ *fbauth.UserToCreate) (*fbauth.UserRecord, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	uid := "uid-" + string(rune('a'+len(f.created)))
	f.created = append(f.created, uid)
	return &fbauth.UserRecord{UserInfo: &fbauth.UserInfo{UID: uid}}, nil
}

func (f *fakeProvisioner) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

// live counts credentials created and not deleted since.
func (f *fakeProvisioner) live() int {
	return len(f.created) - len(f.deleted)
}

// rejectingSet is a users collection whose writes fail.
type rejectingSet struct {
	docstore.Collection[domain.UserProfile]
	err error
}

func (r rejectingSet) Set(context.Context, domain.UserProfile) error {
	return r.err
}

func setupDirectory(t *testing.T, prov Provisioner) (*Directory, docstore.Collection[domain.UserProfile]) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := docstore.NewRedisCollection[domain.UserProfile](client, "test", "users")
	clock := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	dir := NewDirectory(repo, prov, []string{" Owner@Studio.com "}).WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = dir.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		client.Close()
		mr.Close()
	})

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, dir.Feed().Wait(waitCtx))
	return dir, repo
}

func validUser() domain.NewUser {
	return domain.NewUser{
		Name:            "Priya",
		Email:           "Priya@Studio.com",
		Role:            "admin",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestProvision(t *testing.T) {
	prov := &fakeProvisioner{}
	dir, repo := setupDirectory(t, prov)
	ctx := context.Background()

	t.Run("creates credential then profile", func(t *testing.T) {
		profile, err := dir.Provision(ctx, validUser())
		require.NoError(t, err)
		assert.Equal(t, "uid-a", profile.ID)
		assert.Equal(t, "priya@studio.com", profile.Email)
		assert.Equal(t, auth.RoleAdmin, profile.Role)

		stored, err := repo.Get(ctx, "uid-a")
		require.NoError(t, err)
		assert.Equal(t, "Priya", stored.Name)
	})

	invalid := map[string]struct {
		mutate func(*domain.NewUser)
		want   error
	}{
		"blank name":     {func(u *domain.NewUser) { u.Name = "  " }, domain.ErrNameRequired},
		"missing email":  {func(u *domain.NewUser) { u.Email = "" }, domain.ErrEmailRequired},
		"short password": {func(u *domain.NewUser) { u.Password, u.ConfirmPassword = "12345", "12345" }, domain.ErrPasswordTooShort},
		"mismatch":       {func(u *domain.NewUser) { u.ConfirmPassword = "secret2" }, domain.ErrPasswordMismatch},
		"unknown role":   {func(u *domain.NewUser) { u.Role = "Super Admin" }, domain.ErrInvalidRole},
	}
	for name, tc := range invalid {
		t.Run("rejects "+name, func(t *testing.T) {
			u := validUser()
			tc.mutate(&u)
			_, err := dir.Provision(ctx, u)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, domain.IsValidation(err))
		})
	}

	t.Run("validation failures never reach the provider", func(t *testing.T) {
		assert.Len(t, prov.created, 1)
	})

	t.Run("role defaults to user", func(t *testing.T) {
		u := validUser()
		u.Email = "staff@studio.com"
		u.Role = ""
		profile, err := dir.Provision(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, profile.Role)
	})
}

func TestProvisionProviderFailure(t *testing.T) {
	dir, repo := setupDirectory(t, &fakeProvisioner{fail: errors.New("quota")})
	_, err := dir.Provision(context.Background(), validUser())
	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProvisionProfileWriteFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	base := docstore.NewRedisCollection[domain.UserProfile](client, "test", "users")
	prov := &fakeProvisioner{}
	ctx := context.Background()

	dir := NewDirectory(rejectingSet{Collection: base, err: docstore.ErrPermissionDenied}, prov, nil)
	_, err = dir.Provision(ctx, validUser())
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)
	assert.Equal(t, []string{"uid-a"}, prov.deleted)
	assert.Zero(t, prov.live())

	// once the store accepts writes the same email goes through
	dir = NewDirectory(base, prov, nil)
	profile, err := dir.Provision(ctx, validUser())
	require.NoError(t, err)
	assert.Equal(t, "uid-b", profile.ID)
	assert.Equal(t, 1, prov.live())
}

func TestProvisionWithoutProvisioner(t *testing.T) {
	dir, _ := setupDirectory(t, nil)
	_, err := dir.Provision(context.Background(), validUser())
	assert.ErrorIs(t, err, domain.ErrProvisionerUnavailable)
}

func TestRoleOf(t *testing.T) {
	dir, repo := setupDirectory(t, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, domain.UserProfile{ID: "u-admin", Email: "a@studio.com", Role: auth.RoleAdmin}))
	require.NoError(t, repo.Set(ctx, domain.UserProfile{ID: "u-user", Email: "b@studio.com", Role: auth.RoleUser}))
	require.Eventually(t, func() bool { return len(dir.List()) == 2 }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, auth.RoleAdmin, dir.RoleOf("u-admin", "a@studio.com"))
	assert.Equal(t, auth.RoleUser, dir.RoleOf("u-user", "b@studio.com"))
	assert.Equal(t, auth.RoleUser, dir.RoleOf("stranger", "c@studio.com"))
	assert.Equal(t, auth.RoleAdmin, dir.RoleOf("u-user", "OWNER@studio.com"))
}

func TestRecordLogin(t *testing.T) {
	dir, repo := setupDirectory(t, nil)
	ctx := context.Background()

	t.Run("creates a profile on first login", func(t *testing.T) {
		require.NoError(t, dir.RecordLogin(ctx, "u1", "Owner@Studio.com"))
		p, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "owner", p.Name)
		assert.Equal(t, auth.RoleAdmin, p.Role)
		require.NotNil(t, p.LastLogin)
	})

	t.Run("stamps existing profiles", func(t *testing.T) {
		before, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		require.NoError(t, dir.RecordLogin(ctx, "u1", "owner@studio.com"))
		after, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, after.LastLogin.After(*before.LastLogin))
		assert.Equal(t, before.JoinedAt, after.JoinedAt)
	})
}

func TestDelete(t *testing.T) {
	dir, repo := setupDirectory(t, nil)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, domain.UserProfile{ID: "u1", Name: "A"}))

	require.NoError(t, dir.Delete(ctx, "u1"))
	assert.ErrorIs(t, dir.Delete(ctx, "u1"), domain.ErrUserNotFound)
}
