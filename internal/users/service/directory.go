package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/weddingmoments/studio-backend/internal/auth"
	"github.com/weddingmoments/studio-backend/internal/docstore"
	"github.com/weddingmoments/studio-backend/internal/live"
	"github.com/weddingmoments/studio-backend/internal/logging"
	"github.com/weddingmoments/studio-backend/internal/users/domain"
)

// Provisioner creates credentials with the auth provider. *auth.Client from
// the Firebase Admin SDK satisfies it.
type Provisioner interface {
	CreateUser(ctx context.Context, user *fbauth.UserToCreate) (*fbauth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

// Directory mirrors the user profiles collection and resolves roles for the
// auth gate.
type Directory struct {
	repo        docstore.Collection[domain.UserProfile]
	feed        *live.Feed[[]domain.UserProfile]
	provisioner Provisioner
	admins      map[string]bool
	now         func() time.Time
}

func NewDirectory(repo docstore.Collection[domain.UserProfile], provisioner Provisioner, bootstrapAdmins []string) *Directory {
	admins := make(map[string]bool, len(bootstrapAdmins))
	for _, e := range bootstrapAdmins {
		admins[normalizeEmail(e)] = true
	}
	return &Directory{
		repo:        repo,
		feed:        live.NewFeed[[]domain.UserProfile](),
		provisioner: provisioner,
		admins:      admins,
		now:         time.Now,
	}
}

func (d *Directory) WithClock(now func() time.Time) *Directory {
	d.now = now
	return d
}

func (d *Directory) Run(ctx context.Context) error {
	logger := logging.Background("users-watch")
	return d.repo.Watch(ctx,
		func(users []domain.UserProfile) {
			d.feed.Publish(users)
		},
		func(err error) {
			logger.Error("watch_users", err)
			d.feed.SetErr(err)
		},
	)
}

func (d *Directory) Feed() *live.Feed[[]domain.UserProfile] {
	return d.feed
}

func (d *Directory) List() []domain.UserProfile {
	all, _ := d.feed.Load()
	return append([]domain.UserProfile(nil), all...)
}

// RoleOf implements auth.RoleResolver. Bootstrap admins win over any stored
// profile; unknown principals are plain users.
func (d *Directory) RoleOf(uid, email string) auth.Role {
	if email != "" && d.admins[normalizeEmail(email)] {
		return auth.RoleAdmin
	}
	for _, u := range d.List() {
		if u.ID == uid {
			if role, ok := auth.ParseRole(string(u.Role)); ok {
				return role
			}
			break
		}
	}
	return auth.RoleUser
}

// Provision creates the credential server-side, then stores the profile
// under the provider's uid. Nothing is written when validation fails, and
// the credential is removed again when the profile cannot be stored so the
// same email can be retried.
func (d *Directory) Provision(ctx context.Context, req domain.NewUser) (domain.UserProfile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validate(&req); err != nil {
		return domain.UserProfile{}, err
	}
	if d.provisioner == nil {
		return domain.UserProfile{}, domain.ErrProvisionerUnavailable
	}

	params := (&fbauth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.Name)
	record, err := d.provisioner.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return domain.UserProfile{}, domain.ErrEmailExists
		}
		return domain.UserProfile{}, fmt.Errorf("create credential: %w", err)
	}

	profile := domain.UserProfile{
		ID:       record.UID,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Phone:    strings.TrimSpace(req.Phone),
		JoinedAt: d.now(),
	}
	if err := d.repo.Set(ctx, profile); err != nil {
		if rbErr := d.provisioner.DeleteUser(ctx, record.UID); rbErr != nil {
			logging.NewLogger(ctx).Errorf("provision_user", "credential %s left without profile: %v", record.UID, rbErr)
		}
		return domain.UserProfile{}, fmt.Errorf("store profile: %w", err)
	}
	return profile, nil
}

// Delete removes the profile only. The credential stays with the provider
// and can still sign in as a plain user.
func (d *Directory) Delete(ctx context.Context, id string) error {
	if _, err := d.repo.Get(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return d.repo.Delete(ctx, id)
}

// RecordLogin stamps lastLogin, creating a profile for principals that
// signed in before one existed.
func (d *Directory) RecordLogin(ctx context.Context, uid, email string) error {
	now := d.now()
	err := d.repo.Merge(ctx, uid, map[string]any{"lastLogin": now})
	if !errors.Is(err, docstore.ErrNotFound) {
		return err
	}

	email = normalizeEmail(email)
	return d.repo.Set(ctx, domain.UserProfile{
		ID:        uid,
		Name:      nameFromEmail(email),
		Email:     email,
		Role:      d.RoleOf(uid, email),
		LastLogin: &now,
		JoinedAt:  now,
	})
}

func validate(req *domain.NewUser) error {
	if req.Name == "" {
		return domain.ErrNameRequired
	}
	if req.Email == "" {
		return domain.ErrEmailRequired
	}
	if len(req.Password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if req.Role == "" {
		req.Role = auth.RoleUser
	}
	role, ok := auth.ParseRole(string(req.Role))
	if !ok {
		return domain.ErrInvalidRole
	}
	req.Role = role
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

func mapNotFound(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
