// Package session supplies the authenticated user identity for the local
// single-user installation. The rest of the system only ever asks it for a
// user id; an empty id makes onboarding finalize inert.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/impulsoapp/impulso/internal/repository"
)

// Provider resolves the current user id. Override forces a specific id
// (used by scripting and tests); otherwise the first stored user wins, and
// one is created on first run.
type Provider struct {
	users    repository.UserRepo
	override string
}

// NewProvider creates a Provider. override may be empty.
func NewProvider(users repository.UserRepo, override string) *Provider {
	return &Provider{users: users, override: override}
}

// CurrentUserID returns the local user id, creating the identity row on
// first run. An override id is registered if it is not stored yet so foreign
// keys on goals hold.
func (p *Provider) CurrentUserID(ctx context.Context) (string, error) {
	if p.override != "" {
		ok, err := p.users.Exists(ctx, p.override)
		if err != nil {
			return "", err
		}
		if !ok {
			if err := p.users.Create(ctx, p.override); err != nil {
				return "", err
			}
		}
		return p.override, nil
	}

	id, err := p.users.First(ctx)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = uuid.New().String()
	if err := p.users.Create(ctx, id); err != nil {
		return "", fmt.Errorf("creating local user: %w", err)
	}
	return id, nil
}
