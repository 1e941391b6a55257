package repository

import (
	"context"
	"database/sql"
	"embed"
	stderrors "errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // Registers the "postgres" database/sql driver.
	"github.com/reshetovitsme/bump-notifier/internal/modules/settings/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/oops"
	_ "modernc.org/sqlite" // Registers the "sqlite" database/sql driver.
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLStorage implements Repository on top of SQLite or PostgreSQL
type SQLStorage struct {
	db      *sql.DB
	backend config.SettingsBackend
	log     *slog.Logger
}

// NewSQLStorage opens the database, applies pending migrations and returns the repository.
func NewSQLStorage(
	ctx context.Context,
	backend config.SettingsBackend,
	dsn string,
	log *slog.Logger,
) (*SQLStorage, error) {
	var driverName string

	switch backend {
	case config.SettingsBackendSqlite:
		driverName = "sqlite"
	case config.SettingsBackendPostgres:
		driverName = "postgres"
	default:
		return nil, oops.With("settings_backend", backend).Wrap(errors.ErrUnsupportedBackend)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, oops.With("settings_backend", backend, "context", "failed to open database").Wrap(err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, oops.With("settings_backend", backend, "context", "failed to ping database").Wrap(err)
	}

	s := &SQLStorage{db: db, backend: backend, log: log}

	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLStorage) migrate(ctx context.Context) error {
	var (
		driver database.Driver
		err    error
	)

	switch s.backend {
	case config.SettingsBackendPostgres:
		driver, err = postgres.WithInstance(s.db, &postgres.Config{})
	default:
		driver, err = sqlite.WithInstance(s.db, &sqlite.Config{})
	}
	if err != nil {
		return oops.With("settings_backend", s.backend, "context", "failed to create migration driver").Wrap(err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return oops.With("context", "failed to create migration source").Wrap(err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(s.backend), driver)
	if err != nil {
		return oops.With("settings_backend", s.backend, "context", "failed to create migrate instance").Wrap(err)
	}

	migrateErr := m.Up()
	if migrateErr != nil && !stderrors.Is(migrateErr, migrate.ErrNoChange) {
		return oops.With("settings_backend", s.backend, "context", "failed to apply migrations").Wrap(migrateErr)
	}

	version, dirty, err := m.Version()
	if err != nil && !stderrors.Is(err, migrate.ErrNilVersion) {
		s.log.WarnContext(ctx, "Failed to fetch migration version",
			"error", err,
			"settingsBackend", s.backend)
		return nil
	}

	s.log.InfoContext(ctx, "Settings database is migrated",
		"settingsBackend", s.backend,
		"version", version,
		"dirty", dirty,
		"changed", migrateErr == nil)

	return nil
}

func (s *SQLStorage) Get(ctx context.Context, platform, guildID, key string) (string, error) {
	query := s.rebind(`select setting_value
	from guild_settings
	where platform = ? and guild_id = ? and setting_key = ?`)

	var value string
	err := s.db.QueryRowContext(ctx, query, platform, guildID, key).Scan(&value)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return "", errors.ErrSettingNotFound
		}
		return "", oops.With("platform", platform, "guild_id", guildID, "key", key, "context", "failed to query setting").Wrap(err)
	}

	return value, nil
}

func (s *SQLStorage) Set(ctx context.Context, setting domain.Setting) error {
	query := s.rebind(`insert into guild_settings (platform, guild_id, setting_key, setting_value, updated_at)
	values (?, ?, ?, ?, ?)
	on conflict (platform, guild_id, setting_key) do update
	set setting_value = excluded.setting_value, updated_at = excluded.updated_at`)

	_, err := s.db.ExecContext(ctx, query,
		setting.Platform, setting.GuildID, setting.Key, setting.Value, time.Now().UTC())
	if err != nil {
		return oops.With("platform", setting.Platform, "guild_id", setting.GuildID, "key", setting.Key, "context", "failed to upsert setting").Wrap(err)
	}

	return nil
}

func (s *SQLStorage) Delete(ctx context.Context, platform, guildID, key string) error {
	query := s.rebind("delete from guild_settings where platform = ? and guild_id = ? and setting_key = ?")

	if _, err := s.db.ExecContext(ctx, query, platform, guildID, key); err != nil {
		return oops.With("platform", platform, "guild_id", guildID, "key", key, "context", "failed to delete setting").Wrap(err)
	}

	return nil
}

func (s *SQLStorage) Guilds(ctx context.Context, platform, key string) ([]string, error) {
	query := s.rebind(`select guild_id
	from guild_settings
	where platform = ? and setting_key = ?
	order by guild_id`)

	rows, err := s.db.QueryContext(ctx, query, platform, key)
	if err != nil {
		return nil, oops.With("platform", platform, "key", key, "context", "failed to query guilds").Wrap(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"platform", platform,
				"operation", "Guilds")
		}
	}()

	guilds := []string{}
	for rows.Next() {
		var guildID string
		if err := rows.Scan(&guildID); err != nil {
			return nil, oops.With("platform", platform, "context", "failed to scan row").Wrap(err)
		}
		guilds = append(guilds, guildID)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.With("platform", platform, "context", "failed to iterate rows").Wrap(err)
	}

	return guilds, nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func (s *SQLStorage) rebind(query string) string {
	if s.backend != config.SettingsBackendPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
