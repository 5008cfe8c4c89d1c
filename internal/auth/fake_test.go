package auth

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"
)

type fakeVerifier struct {
	tokens  map[string]*auth.Token
	revoked []string
}

func (f *fakeVerifier) VerifyIDTokenAndCheckRevoked(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid token")
}

func (f *fakeVerifier) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

type staticRoles map[string]Role

func (s staticRoles) RoleOf(uid, _ string) Role {
	if r, ok := s[uid]; ok {
		return r
	}
	return RoleUser
}
