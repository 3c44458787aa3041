package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

type Storage struct {
	db *sql.DB
}

// Open открывает (или создает) файл базы и готовит схему.
func Open(path string) (*Storage, error) {
	db, err := sql.Open(driverName, path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// один писатель
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}
	return s, nil
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS packages (
			pkg_name            TEXT     NOT NULL,
			pkg_type            TEXT     NOT NULL,
			pkg_version         TEXT     NOT NULL,
			pkg_size            INTEGER  NOT NULL DEFAULT 0,
			download_url        TEXT     NOT NULL DEFAULT '',
			update_desc         TEXT     NOT NULL DEFAULT '',
			md5                 TEXT     NOT NULL DEFAULT '',
			is_force_update     BOOLEAN  NOT NULL DEFAULT 0,
			min_android_version TEXT     NOT NULL DEFAULT '',
			min_ios_version     TEXT     NOT NULL DEFAULT '',
			min_box_version     TEXT     NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL,
			updated_at          DATETIME NOT NULL,
			UNIQUE (pkg_name, pkg_type, pkg_version)
		);

		CREATE TABLE IF NOT EXISTS registry_clients (
			box_uuid    TEXT     NOT NULL,
			client_uuid TEXT     NOT NULL,
			subdomain   TEXT     NOT NULL,
			client_type TEXT     NOT NULL DEFAULT '',
			user_id     TEXT     NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL,
			PRIMARY KEY (box_uuid, client_uuid)
		);

		CREATE INDEX IF NOT EXISTS idx_registry_clients_subdomain ON registry_clients(subdomain);

		CREATE TABLE IF NOT EXISTS registry_subdomains (
			subdomain  TEXT PRIMARY KEY,
			box_uuid   TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		INSERT OR IGNORE INTO registry_subdomains (subdomain, box_uuid, created_at)
		SELECT subdomain, box_uuid, MIN(created_at) FROM registry_clients GROUP BY subdomain;

		CREATE TABLE IF NOT EXISTS box_networks (
			box_uuid          TEXT PRIMARY KEY,
			network_client_id TEXT NOT NULL,
			updated_at        DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS boxes (
			mac          TEXT PRIMARY KEY,
			number       TEXT NOT NULL DEFAULT '',
			ip           TEXT NOT NULL DEFAULT '',
			version      TEXT NOT NULL DEFAULT '',
			cpu_count    TEXT NOT NULL DEFAULT '',
			cpu_id       TEXT NOT NULL DEFAULT '',
			memory       TEXT NOT NULL DEFAULT '',
			wifi         TEXT NOT NULL DEFAULT '',
			bluetooth    TEXT NOT NULL DEFAULT '',
			usb          TEXT NOT NULL DEFAULT '',
			operate_user TEXT NOT NULL DEFAULT '',
			other        TEXT NOT NULL DEFAULT '',
			tested_at    TEXT NOT NULL DEFAULT '',
			box_qrcode   TEXT NOT NULL DEFAULT '',
			btid         TEXT NOT NULL DEFAULT '',
			btid_hash    TEXT NOT NULL DEFAULT '',
			box_uuid     TEXT NOT NULL DEFAULT '',
			updated_at   DATETIME NOT NULL
		);
	`)
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
