package postgres

//nolint:revive
import (
	"shareit/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection holds the two pools. Repositories read from Read and write through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read:  connect("read", pg.Read, pg.Prefix, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", pg.Write, pg.Prefix, pg.MaxRetry, pg.RetryWaitTime),
	}
}

// connect dials the node, retrying maxRetry times, and exits the process when every attempt fails.
func connect(side string, node config.PostgresNode, prefix string, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().
		Str("side", side).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("db", prefix+node.Name).
		Logger()

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect(driverName, node.DSN(prefix))
		if err == nil {
			configurePool(db, node)
			logger.Info().Int("max_open", node.MaxOpenConns).Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Int("attempts", maxRetry).Msg("Giving up connecting to database")

	return nil
}

func configurePool(db *sqlx.DB, node config.PostgresNode) {
	db.SetMaxOpenConns(node.MaxOpenConns)
	db.SetMaxIdleConns(node.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(node.MaxLifetime) * time.Minute)
}
