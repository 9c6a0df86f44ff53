package seeder

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/database"
)

// Seeder writes one group of demo rows. Running it twice must not duplicate
// rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.Querier) error
}

// Runner applies Seeders in order, each inside its own transaction when Tx
// is set.
type Runner struct {
	DB      database.Querier
	Tx      database.TxManager
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context) error {
	if r.DB == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		err := r.within(ctx, func(ctx context.Context) error {
			return s.Run(ctx, database.QuerierFromContext(ctx, r.DB))
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seed] %s done", s.Name())
		}
	}
	return nil
}

func (r Runner) within(ctx context.Context, fn func(context.Context) error) error {
	if r.Tx == nil {
		return fn(ctx)
	}
	return r.Tx.WithinReadWrite(ctx, fn)
}
