package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/inventory"
)

type BoxRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewBoxRepository(pool *pgxpool.Pool, log *slog.Logger) *BoxRepository {
	return &BoxRepository{
		pool: pool,
		log:  log.With("component", "box_repository"),
	}
}

func (r *BoxRepository) Upsert(ctx context.Context, b *inventory.Box) error {
	const query = `
		INSERT INTO boxes (mac, number, ip, version, cpu_count, cpu_id, memory, wifi, bluetooth, usb,
			operate_user, other, tested_at, box_qrcode, btid, btid_hash, box_uuid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (mac) DO UPDATE
		SET number = EXCLUDED.number, ip = EXCLUDED.ip, version = EXCLUDED.version,
			cpu_count = EXCLUDED.cpu_count, cpu_id = EXCLUDED.cpu_id, memory = EXCLUDED.memory,
			wifi = EXCLUDED.wifi, bluetooth = EXCLUDED.bluetooth, usb = EXCLUDED.usb,
			operate_user = EXCLUDED.operate_user, other = EXCLUDED.other, tested_at = EXCLUDED.tested_at,
			box_qrcode = EXCLUDED.box_qrcode, btid = EXCLUDED.btid, btid_hash = EXCLUDED.btid_hash,
			box_uuid = EXCLUDED.box_uuid, updated_at = NOW()
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		b.MAC, b.Number, b.IP, b.Version, b.CPUCount, b.CPUID, b.Memory, b.WiFi, b.Bluetooth, b.USB,
		b.OperateUser, b.Other, b.Time, b.BoxQRCode, b.BTID, b.BTIDHash, b.BoxUUID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert box %s: %w", b.MAC, err)
	}
	return nil
}

func (r *BoxRepository) List(ctx context.Context) ([]inventory.Box, error) {
	const query = `
		SELECT mac, number, ip, version, cpu_count, cpu_id, memory, wifi, bluetooth, usb,
			operate_user, other, tested_at, box_qrcode, btid, btid_hash, box_uuid, updated_at
		FROM boxes
		ORDER BY mac`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list boxes", "error", err)
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	defer rows.Close()

	var boxes []inventory.Box
	for rows.Next() {
		var b inventory.Box
		if err := rows.Scan(&b.MAC, &b.Number, &b.IP, &b.Version, &b.CPUCount, &b.CPUID, &b.Memory,
			&b.WiFi, &b.Bluetooth, &b.USB, &b.OperateUser, &b.Other, &b.Time, &b.BoxQRCode,
			&b.BTID, &b.BTIDHash, &b.BoxUUID, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan box: %w", err)
		}
		boxes = append(boxes, b)
	}
	return boxes, rows.Err()
}
