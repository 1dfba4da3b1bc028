package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// PingTimeout bounds how long a connection attempt may take.
const PingTimeout = 10 * time.Second

type Role string

const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// ConnectionError is fatal for a run: nothing is synced without both sides.
type ConnectionError struct {
	Role Role
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection failed: %v", e.Role, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Endpoint names one side of a run.
type Endpoint struct {
	Role   Role
	Driver string
	DSN    string
}

// Opener matches sql.Open.
type Opener func(driver, dsn string) (*sql.DB, error)

// Connect opens and pings ep. The pool is limited to one connection since
// every statement of a run is issued sequentially.
func Connect(ctx context.Context, ep Endpoint, open Opener) (*sql.DB, error) {
	if open == nil {
		open = sql.Open
	}
	db, err := open(ep.Driver, ep.DSN)
	if err != nil {
		return nil, &ConnectionError{Role: ep.Role, Err: err}
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, &ConnectionError{Role: ep.Role, Err: err}
	}
	return db, nil
}

// Pair holds both connections of a run.
type Pair struct {
	Source *sql.DB
	Target *sql.DB
}

// OpenPair connects to both endpoints concurrently. If either side fails the
// other is closed and the first failure is returned.
func OpenPair(ctx context.Context, source, target Endpoint, open Opener) (*Pair, error) {
	var (
		p Pair
		g errgroup.Group
	)
	g.Go(func() (err error) {
		p.Source, err = Connect(ctx, source, open)
		return err
	})
	g.Go(func() (err error) {
		p.Target, err = Connect(ctx, target, open)
		return err
	})

	if err := g.Wait(); err != nil {
		p.Close()
		return nil, err
	}
	return &p, nil
}

func (p *Pair) Close() error {
	var errs []error
	if p.Source != nil {
		errs = append(errs, p.Source.Close())
		p.Source = nil
	}
	if p.Target != nil {
		errs = append(errs, p.Target.Close())
		p.Target = nil
	}
	return errors.Join(errs...)
}
