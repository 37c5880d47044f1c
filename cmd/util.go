// Package cmd provides CLI commands for the sdnscreen tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/screenline/sdnscreen/config"
	"github.com/screenline/sdnscreen/pkg/db"
	"github.com/screenline/sdnscreen/pkg/logging"
	"github.com/screenline/sdnscreen/pkg/observability"
	"github.com/screenline/sdnscreen/pkg/reference"
	"github.com/screenline/sdnscreen/pkg/resolve"
)

// Deps holds the dependencies shared by all commands. Tests inject a
// pre-built engine; production commands load the reference set from the
// configured backend on first use.
type Deps struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics *observability.ScreeningMetrics
	Tracer  *observability.Tracer
	LoadSet func(ctx context.Context, cfg *config.Config) (*reference.Set, error)

	// Engine, when non-nil, bypasses LoadSet entirely.
	Engine *resolve.Engine
}

// DefaultDeps returns the production dependencies. Metrics register on the
// default Prometheus registerer, so build it once per process.
func DefaultDeps(cfg *config.Config) *Deps {
	return &Deps{
		Config:  cfg,
		Logger:  logging.MustGlobal(),
		Metrics: observability.DefaultScreeningMetrics(),
		Tracer:  observability.NewTracer(),
		LoadSet: loadSet,
	}
}

// loadSet loads the reference tables from the configured backend.
func loadSet(ctx context.Context, cfg *config.Config) (*reference.Set, error) {
	switch cfg.Backend {
	case config.BackendCSV:
		set, err := reference.LoadSetFromDir(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("loading reference data from %s: %w", cfg.DataDir, err)
		}
		return set, nil

	case config.BackendSDNXML:
		set, pub, err := reference.LoadSetFromSDN(cfg.SDNFile)
		if err != nil {
			return nil, fmt.Errorf("loading SDN export %s: %w", cfg.SDNFile, err)
		}
		logging.MustGlobal().Debug("loaded SDN export",
			logging.F("publish_date", pub.Date),
			logging.F("record_count", pub.RecordCount))
		return set, nil

	case config.BackendPostgres:
		pool, err := db.Connect(ctx, db.ConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()
		set, err := reference.LoadSetFromPostgres(ctx, pool)
		if err != nil {
			return nil, fmt.Errorf("loading reference data from database: %w", err)
		}
		return set, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// engine returns the resolution engine, building it from the configured
// backend when one was not injected.
func (d *Deps) engine(ctx context.Context) (*resolve.Engine, error) {
	if d.Engine != nil {
		return d.Engine, nil
	}
	set, err := d.LoadSet(ctx, d.Config)
	if err != nil {
		return nil, err
	}
	d.Engine = resolve.NewEngine(set,
		resolve.WithWorkers(d.Config.Workers),
		resolve.WithLogger(d.Logger),
		resolve.WithMetrics(d.Metrics),
		resolve.WithTracer(d.Tracer))
	return d.Engine, nil
}

// set returns the loaded reference tables.
func (d *Deps) set(ctx context.Context) (*reference.Set, error) {
	eng, err := d.engine(ctx)
	if err != nil {
		return nil, err
	}
	return eng.Set(), nil
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
