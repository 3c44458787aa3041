package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"mgtboard/internal/domain/inventory"
)

type BoxRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewBoxRepository(db *sql.DB, log *slog.Logger) *BoxRepository {
	return &BoxRepository{
		db:  db,
		log: log.With("component", "box_repository"),
	}
}

func (r *BoxRepository) Upsert(ctx context.Context, b *inventory.Box) error {
	const query = `
		INSERT INTO boxes (mac, number, ip, version, cpu_count, cpu_id, memory, wifi, bluetooth, usb,
			operate_user, other, tested_at, box_qrcode, btid, btid_hash, box_uuid, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (mac) DO UPDATE
		SET number = excluded.number, ip = excluded.ip, version = excluded.version,
			cpu_count = excluded.cpu_count, cpu_id = excluded.cpu_id, memory = excluded.memory,
			wifi = excluded.wifi, bluetooth = excluded.bluetooth, usb = excluded.usb,
			operate_user = excluded.operate_user, other = excluded.other, tested_at = excluded.tested_at,
			box_qrcode = excluded.box_qrcode, btid = excluded.btid, btid_hash = excluded.btid_hash,
			box_uuid = excluded.box_uuid, updated_at = excluded.updated_at`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		b.MAC, b.Number, b.IP, b.Version, b.CPUCount, b.CPUID, b.Memory, b.WiFi, b.Bluetooth, b.USB,
		b.OperateUser, b.Other, b.Time, b.BoxQRCode, b.BTID, b.BTIDHash, b.BoxUUID, now,
	)
	if err != nil {
		return fmt.Errorf("upsert box %s: %w", b.MAC, err)
	}
	b.UpdatedAt = now
	return nil
}

func (r *BoxRepository) List(ctx context.Context) ([]inventory.Box, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT mac, number, ip, version, cpu_count, cpu_id, memory, wifi, bluetooth, usb,
			operate_user, other, tested_at, box_qrcode, btid, btid_hash, box_uuid, updated_at
		FROM boxes
		ORDER BY mac`)
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
