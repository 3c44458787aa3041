package inventory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
	List(ctx context.Context) ([]Box, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "inventory_service"),
	}
}

// Import parses a workbook and upserts every non-empty row by MAC.
// Rows that fail validation or storage are reported, not fatal.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	sheet, err := ParseBoxes(r)
	if err != nil {
		s.log.Warn("failed to parse inventory workbook", "error", err)
		return nil, err
	}

	res := &ImportResult{Skipped: sheet.Skipped}
	for i := range sheet.Boxes {
		b := &sheet.Boxes[i]

		if err := normalize(b); err != nil {
			res.Failed = append(res.Failed, RowError{Row: b.Row, Error: err.Error()})
			continue
		}
		if err := s.repo.Upsert(ctx, b); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("import boxes: %w", ctx.Err())
			}
			s.log.Error("failed to store box", "row", b.Row, "mac", b.MAC, "error", err)
			res.Failed = append(res.Failed, RowError{Row: b.Row, Error: err.Error()})
			continue
		}
		res.Imported++
	}

	s.log.Info("inventory imported",
		"imported", res.Imported, "skipped", res.Skipped, "failed", len(res.Failed))
	return res, nil
}

func (s *Service) List(ctx context.Context) ([]Box, error) {
	boxes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	return boxes, nil
}

// normalize canonicalizes the MAC and derives the bluetooth id hash.
func normalize(b *Box) error {
	if b.MAC == "" {
		return fmt.Errorf("%w: MAC is required", ErrInvalidBox)
	}
	hw, err := net.ParseMAC(b.MAC)
	if err != nil {
		return fmt.Errorf("%w: bad MAC %q", ErrInvalidBox, b.MAC)
	}
	b.MAC = hw.String()

	if b.BTID != "" {
		sum := sha256.Sum256([]byte(b.BTID))
		b.BTIDHash = hex.EncodeToString(sum[:])
	}
	return nil
}
