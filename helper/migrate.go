package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"shareit/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// Migration actions accepted by Runner.
const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

// steps maps an action to the golang-migrate call that performs it.
var steps = map[string]func(*migrate.Migrate) error{
	ActionUp:     (*migrate.Migrate).Up,
	ActionDrop:   (*migrate.Migrate).Down,
	ActionDown:   func(m *migrate.Migrate) error { return m.Steps(-1) },
	ActionStepUp: func(m *migrate.Migrate) error { return m.Steps(1) },
}

// open targets the write node since migrations change the schema.
func open(cfg *config.Config) (*migrate.Migrate, error) {
	pg := cfg.DB.Postgres

	mig, err := migrate.New(
		"file://"+pg.MigrationPath,
		pg.Write.DSN(pg.Prefix, "x-migrations-table", pg.MigrationTable),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one action to the ShareIt schema. A schema already at the target is not an error.
func Runner(cfg *config.Config, action string) error {
	step, ok := steps[action]
	if !ok && action != ActionVersion {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if action != ActionVersion {
		if err = step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running %s migration: %w", action, err)
		}
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Schema migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
