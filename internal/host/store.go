package host

import (
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names a database/sql backend StoreHost can open, grounded on
// the teacher's internal/database.DBManager.Connect driver-name
// switch — trimmed to the one table StoreHost actually needs instead of
// the teacher's general connection-pool manager.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
	DriverMSSQL    Driver = "sqlserver"
)

// StoreHost is a vm.Host whose RequestValue/SetValue are backed by a
// single key/value table in a database/sql connection, selectable at
// construction between the pure-Go sqlite default and three networked
// drivers — exactly the multi-driver surface
// internal/database.DBManager registers, scoped here to the one table
// the evaluator's named-value side channel needs.
type StoreHost struct {
	db    *sql.DB
	table string
}

// NewStoreHost opens dsn with driver and ensures the key/value table
// exists. driver selects the database/sql driver name; table defaults
// to "crayfish_values" when empty.
func NewStoreHost(driver Driver, dsn, table string) (*StoreHost, error) {
	if table == "" {
		table = "crayfish_values"
	}
	driverName, err := driverName(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("host: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("host: ping %s: %w", driver, err)
	}
	h := &StoreHost{db: db, table: table}
	if err := h.ensureTable(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func driverName(d Driver) (string, error) {
	switch d {
	case DriverSQLite:
		return "sqlite", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverPostgres:
		return "postgres", nil
	case DriverMSSQL:
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("host: unsupported database driver %q", d)
	}
}

// The upsert statements below use SQLite/Postgres "ON CONFLICT" syntax;
// selecting DriverMySQL or DriverMSSQL requires a DSN whose server
// understands that syntax via compatibility mode, or swapping these two
// statements for the driver's native upsert dialect.
func (h *StoreHost) ensureTable() error {
	_, err := h.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, value TEXT NOT NULL)`, h.table))
	return err
}

func (h *StoreHost) Close() error { return h.db.Close() }

// Write and Read satisfy vm.Host's terminal-style I/O. A StoreHost has
// no terminal of its own: Write appends to a "__stdout__" row of the same
// key/value table, and Read always returns an error because there is no
// input source.
func (h *StoreHost) Write(s string) error {
	_, err := h.db.Exec(
		fmt.Sprintf(`INSERT INTO %s (name, value) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET value = value || ?`, h.table),
		"__stdout__", s, s)
	return err
}

func (h *StoreHost) Read() (string, error) {
	return "", fmt.Errorf("host: StoreHost has no interactive input source")
}

func (h *StoreHost) RequestValue(key string) (any, error) {
	var v string
	err := h.db.QueryRow(
		fmt.Sprintf(`SELECT value FROM %s WHERE name = ?`, h.table), key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("host: no value stored for %q", key)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (h *StoreHost) SetValue(key string, val any) error {
	_, err := h.db.Exec(
		fmt.Sprintf(`INSERT INTO %s (name, value) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value`, h.table),
		key, fmt.Sprintf("%v", val))
	return err
}
