package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/pkg"
)

const packageColumns = `pkg_name, pkg_type, pkg_version, pkg_size, download_url, update_desc, md5,
	is_force_update, min_android_version, min_ios_version, min_box_version, created_at, updated_at`

type PackageRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewPackageRepository(db *sql.DB, log *slog.Logger) *PackageRepository {
	return &PackageRepository{
		db:  db,
		log: log.With("component", "package_repository"),
	}
}

func (r *PackageRepository) Find(ctx context.Context, id pkg.Identity) (*pkg.Package, error) {
	const query = `SELECT ` + packageColumns + `
		FROM packages
		WHERE pkg_name = ? AND pkg_type = ? AND pkg_version = ?`

	p, err := scanPackage(r.db.QueryRowContext(ctx, query, id.Name, string(id.Type), id.Version))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkg.ErrVersionNotFound
		}
		r.log.Error("failed to find package", "pkg", id.String(), "error", err)
		return nil, fmt.Errorf("find package: %w", err)
	}
	return p, nil
}

// FindLatest сортирует по lower(pkg_version) в BINARY collation, как CompareVersions для ASCII версий.
func (r *PackageRepository) FindLatest(ctx context.Context, name string, typ pkg.PkgType) (*pkg.Package, error) {
	const query = `SELECT ` + packageColumns + `
		FROM packages
		WHERE pkg_name = ? AND pkg_type = ?
		ORDER BY lower(pkg_version) DESC
		LIMIT 1`

	p, err := scanPackage(r.db.QueryRowContext(ctx, query, name, string(typ)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkg.ErrVersionNotFound
		}
		r.log.Error("failed to find latest package", "pkg_name", name, "pkg_type", typ, "error", err)
		return nil, fmt.Errorf("find latest package: %w", err)
	}
	return p, nil
}

func (r *PackageRepository) List(ctx context.Context, name string, typ pkg.PkgType) ([]pkg.Package, error) {
	const query = `SELECT ` + packageColumns + `
		FROM packages
		WHERE pkg_name = ? AND pkg_type = ?
		ORDER BY lower(pkg_version) DESC`

	rows, err := r.db.QueryContext(ctx, query, name, string(typ))
	if err != nil {
		r.log.Error("failed to list packages", "pkg_name", name, "pkg_type", typ, "error", err)
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var pkgs []pkg.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		pkgs = append(pkgs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packages: %w", err)
	}
	return pkgs, nil
}

func (r *PackageRepository) Create(ctx context.Context, p *pkg.Package) error {
	const query = `
		INSERT INTO packages (pkg_name, pkg_type, pkg_version, pkg_size, download_url, update_desc, md5,
			is_force_update, min_android_version, min_ios_version, min_box_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		p.Name, string(p.Type), p.Version, p.Size, p.DownloadURL, p.UpdateDesc, p.MD5,
		p.IsForceUpdate, p.MinAndroidVersion, p.MinIOSVersion, p.MinBoxVersion, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return pkg.ErrDuplicateVersion
		}
		return fmt.Errorf("insert package: %w", err)
	}

	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

func (r *PackageRepository) Update(ctx context.Context, p *pkg.Package) error {
	const query = `
		UPDATE packages
		SET pkg_size = ?, download_url = ?, update_desc = ?, md5 = ?, is_force_update = ?,
			min_android_version = ?, min_ios_version = ?, min_box_version = ?, updated_at = ?
		WHERE pkg_name = ? AND pkg_type = ? AND pkg_version = ?`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		p.Size, p.DownloadURL, p.UpdateDesc, p.MD5, p.IsForceUpdate,
		p.MinAndroidVersion, p.MinIOSVersion, p.MinBoxVersion, now,
		p.Name, string(p.Type), p.Version,
	)
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	if n == 0 {
		return pkg.ErrVersionNotFound
	}

	p.UpdatedAt = now
	return nil
}

func (r *PackageRepository) Delete(ctx context.Context, id pkg.Identity) error {
	const query = `DELETE FROM packages WHERE pkg_name = ? AND pkg_type = ? AND pkg_version = ?`

	if _, err := r.db.ExecContext(ctx, query, id.Name, string(id.Type), id.Version); err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPackage(row scanner) (*pkg.Package, error) {
	var (
		p   pkg.Package
		typ string
	)
	err := row.Scan(
		&p.Name, &typ, &p.Version, &p.Size, &p.DownloadURL, &p.UpdateDesc, &p.MD5,
		&p.IsForceUpdate, &p.MinAndroidVersion, &p.MinIOSVersion, &p.MinBoxVersion,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Type = pkg.PkgType(typ)
	return &p, nil
}
