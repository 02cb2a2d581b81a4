package database

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("key must not be empty")

// KVStore is the durable key-value storage the favourites store mirrors its list into.
// Values are opaque strings; a missing key is reported with ok == false and a nil error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
