package pkg

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Save(ctx context.Context, p Package) (*Package, error)
	Update(ctx context.Context, p Package) (*Package, error)
	Delete(ctx context.Context, id Identity) error
	List(ctx context.Context, name string, typ PkgType) ([]Package, error)
	LatestBox(ctx context.Context, name string, typ PkgType) (*Package, error)

	CheckApp(ctx context.Context, q CheckQuery) (CheckResult, error)
	CheckBox(ctx context.Context, q CheckQuery) (CheckResult, error)
	CheckCompatibility(ctx context.Context, q CheckQuery) (CompatibilityResult, error)
}

// Service implements package bookkeeping and the update checks on top of a Repository.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "pkg_service"),
	}
}

// Save stores a new package version.
func (s *Service) Save(ctx context.Context, p Package) (*Package, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	id := p.Identity()
	_, err := s.repo.Find(ctx, id)
	switch {
	case err == nil:
		s.log.Warn("package version already exists", "pkg", id.String())
		return nil, duplicateError(id)
	case !errors.Is(err, ErrVersionNotFound):
		return nil, fmt.Errorf("find package %s: %w", id, err)
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		if errors.Is(err, ErrDuplicateVersion) {
			return nil, duplicateError(id)
		}
		s.log.Error("failed to create package", "pkg", id.String(), "error", err)
		return nil, fmt.Errorf("create package %s: %w", id, err)
	}

	s.warnOrderingHazard(ctx, &p)
	s.log.Info("package saved", "pkg", id.String(), "force_update", p.IsForceUpdate)

	return &p, nil
}

// Update replaces the attributes of an existing package version.
func (s *Service) Update(ctx context.Context, p Package) (*Package, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	id := p.Identity()
	if _, err := s.repo.Find(ctx, id); err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			s.log.Warn("package version does not exist", "pkg", id.String())
			return nil, notFoundError(id, CodeVersionNotExist)
		}
		return nil, fmt.Errorf("find package %s: %w", id, err)
	}

	if err := s.repo.Update(ctx, &p); err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			return nil, notFoundError(id, CodeVersionNotExist)
		}
		s.log.Error("failed to update package", "pkg", id.String(), "error", err)
		return nil, fmt.Errorf("update package %s: %w", id, err)
	}

	s.log.Info("package updated", "pkg", id.String(), "force_update", p.IsForceUpdate)
	return &p, nil
}

// Delete removes a package version. Unknown identities are ignored.
func (s *Service) Delete(ctx context.Context, id Identity) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete package", "pkg", id.String(), "error", err)
		return fmt.Errorf("delete package %s: %w", id, err)
	}
	s.log.Info("package deleted", "pkg", id.String())
	return nil
}

// List returns all versions of (name, type), newest first.
func (s *Service) List(ctx context.Context, name string, typ PkgType) ([]Package, error) {
	if err := typ.Validate(); err != nil {
		return nil, err
	}

	pkgs, err := s.repo.List(ctx, name, typ)
	if err != nil {
		return nil, fmt.Errorf("list packages %s/%s: %w", name, typ, err)
	}

	slices.SortStableFunc(pkgs, func(a, b Package) int {
		return CompareVersions(b.Version, a.Version)
	})
	return pkgs, nil
}

// LatestBox returns the newest box firmware of (name, type).
func (s *Service) LatestBox(ctx context.Context, name string, typ PkgType) (*Package, error) {
	latest, err := s.repo.FindLatest(ctx, name, typ)
	if err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			return nil, notFoundError(Identity{Name: name, Type: typ}, CodeLatestBoxNotExist)
		}
		return nil, fmt.Errorf("find latest box %s/%s: %w", name, typ, err)
	}
	return latest, nil
}

// CheckApp reports whether a newer app exists and whether installing it
// requires a box upgrade. An unknown current app yields an empty result.
func (s *Service) CheckApp(ctx context.Context, q CheckQuery) (CheckResult, error) {
	var res CheckResult

	if _, err := s.repo.Find(ctx, q.app()); err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			s.log.Warn("current app version not found", "pkg", q.app().String())
			return res, nil
		}
		return res, err
	}

	latestApp, err := s.repo.FindLatest(ctx, q.AppName, q.AppType)
	if err != nil {
		return res, fmt.Errorf("find latest app: %w", err)
	}
	latestBox, err := s.findLatestOptional(ctx, q.BoxName, q.BoxType)
	if err != nil {
		return res, err
	}

	if versionLess(q.AppVersion, latestApp.Version) {
		s.log.Info("new app version exists", "pkg", q.app().String(), "latest", latestApp.Version)
		res.NewVersionExist = true
		res.LatestAppPkg = latestApp

		if versionLess(q.BoxVersion, latestApp.MinBoxVersion) {
			s.log.Info("latest app requires a newer box",
				"box", q.box().String(), "min_box_version", latestApp.MinBoxVersion)
			res.IsBoxNeedUpdate = true
			if latestBox != nil {
				res.LatestBoxPkg = latestBox
			} else {
				s.log.Warn("latest box version not found", "box_name", q.BoxName, "box_type", q.BoxType)
			}
		}
	}

	return res, nil
}

// CheckBox reports whether newer box firmware exists and whether installing it
// requires an app upgrade. An unknown current box yields an empty result.
func (s *Service) CheckBox(ctx context.Context, q CheckQuery) (CheckResult, error) {
	var res CheckResult

	if _, err := s.repo.Find(ctx, q.box()); err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			s.log.Warn("current box version not found", "pkg", q.box().String())
			return res, nil
		}
		return res, err
	}

	latestBox, err := s.repo.FindLatest(ctx, q.BoxName, q.BoxType)
	if err != nil {
		return res, fmt.Errorf("find latest box: %w", err)
	}
	latestApp, err := s.findLatestOptional(ctx, q.AppName, q.AppType)
	if err != nil {
		return res, err
	}

	if !versionLess(q.BoxVersion, latestBox.Version) {
		return res, nil
	}

	s.log.Info("new box version exists", "pkg", q.box().String(), "latest", latestBox.Version)
	res.NewVersionExist = true
	res.LatestBoxPkg = latestBox

	floor, err := appVersionFloor(q.AppType)
	if err != nil {
		return res, err
	}
	if versionLess(q.AppVersion, floor(latestBox)) {
		s.log.Info("latest box requires a newer app",
			"app", q.app().String(), "min_app_version", floor(latestBox))
		res.IsAppNeedUpdate = true
		if latestApp != nil {
			res.LatestAppPkg = latestApp
		} else {
			s.log.Warn("latest app version not found", "app_name", q.AppName, "app_type", q.AppType)
		}
	}

	return res, nil
}

func (s *Service) findLatestOptional(ctx context.Context, name string, typ PkgType) (*Package, error) {
	latest, err := s.repo.FindLatest(ctx, name, typ)
	if errors.Is(err, ErrVersionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest %s/%s: %w", name, typ, err)
	}
	return latest, nil
}

// warnOrderingHazard logs versions of the same package whose string order
// differs from their semantic-version order.
func (s *Service) warnOrderingHazard(ctx context.Context, p *Package) {
	siblings, err := s.repo.List(ctx, p.Name, p.Type)
	if err != nil {
		s.log.Debug("skip ordering check", "error", err)
		return
	}

	var conflicts []string
	for _, other := range siblings {
		if other.Version == p.Version {
			continue
		}
		if orderingDisagrees(p.Version, other.Version) {
			conflicts = append(conflicts, other.Version)
		}
	}
	if len(conflicts) > 0 {
		s.log.Warn("version order is string based and disagrees with semantic versioning",
			"pkg", p.Identity().String(), "conflicts", strings.Join(conflicts, ","))
	}
}

func duplicateError(id Identity) *DomainError {
	return &DomainError{
		Err:     ErrDuplicateVersion,
		Message: fmt.Sprintf("package %s already exists", id),
		Code:    CodeVersionExisted,
	}
}

func notFoundError(id Identity, code string) *DomainError {
	msg := fmt.Sprintf("package %s not found", id)
	if id.Version == "" {
		msg = fmt.Sprintf("no versions of %s/%s", id.Name, id.Type)
	}
	return &DomainError{Err: ErrVersionNotFound, Message: msg, Code: code}
}
