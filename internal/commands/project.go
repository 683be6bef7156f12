package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/auditlog"
	"github.com/eeandrelle/tally/internal/claims"
	"github.com/eeandrelle/tally/internal/config"
	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/pool"
	"github.com/eeandrelle/tally/internal/records"
	"github.com/eeandrelle/tally/internal/store"
	"github.com/eeandrelle/tally/internal/taxyear"
)

type rootOptions struct {
	dir     string
	verbose bool
}

func (o *rootOptions) logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// project bundles the open config, document store, and logger that most
// commands need.
type project struct {
	dir string
	cfg *config.Config
	st  store.Store
	log zerolog.Logger
}

func openProject(o *rootOptions) (*project, error) {
	dir, err := filepath.Abs(o.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(dir, "tally.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading project (did you run \"tally init\"?): %w", err)
	}

	log := o.logger()
	dbPath := cfg.Paths.Database
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dir, dbPath)
	}
	st, err := store.NewSQLite(dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &project{dir: dir, cfg: cfg, st: st, log: log}, nil
}

func (p *project) Close() {
	if err := p.st.Close(); err != nil {
		p.log.Warn().Err(err).Msg("closing store")
	}
}

func (p *project) year() taxyear.Year {
	return taxyear.Year(p.cfg.Fiscal.TaxYear)
}

func (p *project) exportDir() string {
	dir := p.cfg.Paths.ExportDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.dir, dir)
	}
	return dir
}

// audit appends a trail entry. Audit failures never abort the command that
// already succeeded; they are logged and dropped.
func (p *project) audit(action, category, recordID, details string) {
	e := auditlog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Category:  category,
		TaxYear:   p.cfg.Fiscal.TaxYear,
		RecordID:  recordID,
		Details:   details,
	}
	if err := auditlog.Append(p.dir, []auditlog.Entry{e}); err != nil {
		p.log.Warn().Err(err).Msg("appending audit log")
	}
}

func (p *project) loadPool(ctx context.Context) (model.PoolWorkpaper, error) {
	var w model.PoolWorkpaper
	err := store.LoadJSON(ctx, p.st, taxyear.Key(store.NamespacePool, p.year()), &w)
	if errors.Is(err, store.ErrNotFound) {
		return pool.New(p.year(), decimal.Zero), nil
	}
	if err != nil {
		return model.PoolWorkpaper{}, err
	}
	return w, nil
}

func (p *project) savePool(ctx context.Context, w model.PoolWorkpaper) error {
	return store.SaveJSON(ctx, p.st, taxyear.Key(store.NamespacePool, taxyear.Year(w.TaxYear)), w)
}

func (p *project) loadRecords(ctx context.Context) (model.RecordSet, error) {
	var rs model.RecordSet
	err := store.LoadJSON(ctx, p.st, taxyear.Key(store.NamespaceRecords, p.year()), &rs)
	if errors.Is(err, store.ErrNotFound) {
		return records.New(p.year()), nil
	}
	if err != nil {
		return model.RecordSet{}, err
	}
	return rs, nil
}

func (p *project) saveRecords(ctx context.Context, rs model.RecordSet) error {
	return store.SaveJSON(ctx, p.st, taxyear.Key(store.NamespaceRecords, p.year()), rs)
}

func (p *project) loadClaims(ctx context.Context) (claims.ClaimSet, error) {
	var cs claims.ClaimSet
	err := store.LoadJSON(ctx, p.st, taxyear.Key(store.NamespaceClaims, p.year()), &cs)
	if errors.Is(err, store.ErrNotFound) {
		return claims.New(p.year()), nil
	}
	if err != nil {
		return claims.ClaimSet{}, err
	}
	return cs, nil
}

func (p *project) saveClaims(ctx context.Context, cs claims.ClaimSet) error {
	return store.SaveJSON(ctx, p.st, taxyear.Key(store.NamespaceClaims, p.year()), cs)
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q", field, s)
	}
	return d, nil
}

// parseDate accepts YYYY-MM-DD, defaulting to today when empty.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}
