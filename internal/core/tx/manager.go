// Package tx declares the transaction boundary domain services run inside.
// The pgx implementation lives in infrastructure/storage/postgres; domain
// packages only ever see these interfaces.
package tx

import (
	"context"
)

// Manager runs a function inside one database transaction. A nested call
// joins the transaction already carried by the context instead of opening a
// second one, so a front desk operation can compose repository writes and
// its audit event into a single commit.
type Manager interface {
	// RunInTransaction executes fn within a transaction. An error from fn
	// rolls the transaction back; nil commits it.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager additionally offers read-only transactions for listing
// and invoice-preview paths that must never write.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction; writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
