// Package session persists the CLI's login state (the cached bearer
// assertion and the user name it was issued to) as key/value rows.
package session

import "context"

const (
	KeyUserName = "username"
	KeyToken    = "token"
)

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
