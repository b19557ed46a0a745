// Package tx runs order mutations in serializable Postgres transactions.
package tx

import (
	"context"
	"errors"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	retrierconfig "grubdash/pkg/retrier"
	"grubdash/pkg/retrier/backoff_adapter"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgSerializationFailure = "40001"

var conflictRetry = retrierconfig.Config{
	InitialInterval: 10 * time.Millisecond,
	MaxInterval:     100 * time.Millisecond,
	MaxElapsedTime:  time.Second,
	Randomization:   0.5,
	Multiplier:      2,
	MaxRetries:      5,
	ShouldRetry:     IsSerializationFailure,
}

type Manager struct {
	internal *manager.Manager
	retrier  retrierconfig.Retrier
}

func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		retrier:  backoff_adapter.New(conflictRetry),
	}
}

// Do runs fn in a serializable transaction. When Postgres aborts it because a
// concurrent transaction touched the same orders, fn is run again from the
// start. Any other error is returned as is.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: pgx.Serializable}),
	)

	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.internal.DoWithSettings(ctx, txSettings, fn)
	})
}

func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure
}
