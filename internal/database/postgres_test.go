package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ upErr, downErr error }

func (f fakeMigrator) Up() error   { return f.upErr }
func (f fakeMigrator) Down() error { return f.downErr }

func restore() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// stubMigrationChain 讓 newMigrator 的每一步都成功，最後回傳指定的 migrator
func stubMigrationChain(m migrateInstance) {
	sqlOpenDB = func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, nil }
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return nil, errors.New("bad") }
	_, err := NewPgxPool(context.Background(), "url")
	require.Error(t, err)

	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return &pgxpool.Pool{}, nil }
	db, err := NewPgxPool(context.Background(), "url")
	require.NoError(t, err)
	require.NotNil(t, db)
}

func TestMigratorSetupErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup func()
	}{
		{"open", func() {
			sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		}},
		{"driver", func() {
			postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") }
		}},
		{"source", func() {
			iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, errors.New("src") }
		}},
		{"migrate", func() {
			migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
				return nil, errors.New("mig")
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			stubMigrationChain(fakeMigrator{})
			tc.setup()
			require.Error(t, RunMigrations("url"))
			require.Error(t, RollbackAll("url"))
		})
	}
}

func TestRunMigrations(t *testing.T) {
	t.Cleanup(restore)
	stubMigrationChain(fakeMigrator{upErr: errors.New("u")})
	require.Error(t, RunMigrations("url"))

	stubMigrationChain(fakeMigrator{upErr: migrate.ErrNoChange})
	require.NoError(t, RunMigrations("url"))

	stubMigrationChain(fakeMigrator{})
	require.NoError(t, RunMigrations("url"))
}

func TestRollbackAll(t *testing.T) {
	t.Cleanup(restore)
	stubMigrationChain(fakeMigrator{downErr: errors.New("d")})
	require.Error(t, RollbackAll("url"))

	stubMigrationChain(fakeMigrator{downErr: migrate.ErrNoChange})
	require.NoError(t, RollbackAll("url"))
}

func TestMigrationsEmbedded(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS users")
	require.Contains(t, string(up), "WHERE removed_flag = FALSE")

	_, err = fs.ReadFile(migrationsFS, "migrations/000001_create_users.down.sql")
	require.NoError(t, err)

	up, err = fs.ReadFile(migrationsFS, "migrations/000002_create_notices.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS notices")
	_, err = fs.ReadFile(migrationsFS, "migrations/000002_create_notices.down.sql")
	require.NoError(t, err)
}
