package auth

import (
	"context"

	"github.com/google/uuid"
)

type Role string

const (
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleWorker || r == RoleAdmin
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
