// Package repokit provides the types and helpers repository implementations share
package repokit

import (
	"context"

	"flowqfit/internal/platform/store"
)

type (
	// Queryer is the read and write surface for SQL repos
	Queryer = store.RowQuerier
	// TxRunner executes a function inside a transaction
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single-row result
	Row = store.Row
	// Columnar is the clickhouse seam
	Columnar = store.Clickhouse
)

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
