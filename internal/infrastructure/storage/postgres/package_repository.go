package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/pkg"
)

const packageColumns = `pkg_name, pkg_type, pkg_version, pkg_size, download_url, update_desc, md5,
	is_force_update, min_android_version, min_ios_version, min_box_version, created_at, updated_at`

type PackageRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPackageRepository(pool *pgxpool.Pool, log *slog.Logger) *PackageRepository {
	return &PackageRepository{
		pool: pool,
		log:  log.With("component", "package_repository"),
	}
}

func (r *PackageRepository) Find(ctx context.Context, id pkg.Identity) (*pkg.Package, error) {
	const query = `SELECT ` + packageColumns + `
		FROM packages
		WHERE pkg_name = $1 AND pkg_type = $2 AND pkg_version = $3`

	p, err := scanPackage(r.pool.QueryRow(ctx, query, id.Name, id.Type, id.Version))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pkg.ErrVersionNotFound
		}
		r.log.Error("failed to find package", "pkg", id.String(), "error", err)
		return nil, fmt.Errorf("find package: %w", err)
	}
	return p, nil
}

func (r *PackageRepository) FindLatest(ctx context.Context, name string, typ pkg.PkgType) (*pkg.Package, error) {
	const query = `SELECT ` + packageColumns + `
		FROM packages
		WHERE pkg_name = $1 AND pkg_type = $2
		ORDER BY lower(pkg_version) COLLATE "C" DESC
		LIMIT 1`

	p, err := scanPackage(r.pool.QueryRow(ctx, query, name, typ))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		WHERE pkg_name = $1 AND pkg_type = $2
		ORDER BY lower(pkg_version) COLLATE "C" DESC`

	rows, err := r.pool.Query(ctx, query, name, typ)
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
			is_force_update, min_android_version, min_ios_version, min_box_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Type, p.Version, p.Size, p.DownloadURL, p.UpdateDesc, p.MD5,
		p.IsForceUpdate, p.MinAndroidVersion, p.MinIOSVersion, p.MinBoxVersion,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return pkg.ErrDuplicateVersion
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

func (r *PackageRepository) Update(ctx context.Context, p *pkg.Package) error {
	const query = `
		UPDATE packages
		SET pkg_size = $4, download_url = $5, update_desc = $6, md5 = $7, is_force_update = $8,
			min_android_version = $9, min_ios_version = $10, min_box_version = $11, updated_at = NOW()
		WHERE pkg_name = $1 AND pkg_type = $2 AND pkg_version = $3
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Type, p.Version, p.Size, p.DownloadURL, p.UpdateDesc, p.MD5,
		p.IsForceUpdate, p.MinAndroidVersion, p.MinIOSVersion, p.MinBoxVersion,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pkg.ErrVersionNotFound
		}
		return fmt.Errorf("update package: %w", err)
	}
	return nil
}

func (r *PackageRepository) Delete(ctx context.Context, id pkg.Identity) error {
	const query = `DELETE FROM packages WHERE pkg_name = $1 AND pkg_type = $2 AND pkg_version = $3`

	if _, err := r.pool.Exec(ctx, query, id.Name, id.Type, id.Version); err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}

func scanPackage(row pgx.Row) (*pkg.Package, error) {
	var p pkg.Package
	err := row.Scan(
		&p.Name, &p.Type, &p.Version, &p.Size, &p.DownloadURL, &p.UpdateDesc, &p.MD5,
		&p.IsForceUpdate, &p.MinAndroidVersion, &p.MinIOSVersion, &p.MinBoxVersion,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
