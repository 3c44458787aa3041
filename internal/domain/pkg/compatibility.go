package pkg

import (
	"context"
	"errors"
	"fmt"
)

// maxReevaluations bounds the mutual app/box re-checks. Each flag can flip
// from unset to set only once, so two extra passes always reach the fixed point.
const maxReevaluations = 2

// convergence is the resolver state while app and box targets escalate to latest.
type convergence struct {
	latestApp *Package
	latestBox *Package
	targetApp *Package
	targetBox *Package
	floor     func(*Package) string
	result    CompatibilityResult
}

// CheckCompatibility resolves whether the app, the box, or both must be force
// updated so that the pair ends up mutually compatible.
func (s *Service) CheckCompatibility(ctx context.Context, q CheckQuery) (CompatibilityResult, error) {
	floor, err := appVersionFloor(q.AppType)
	if err != nil {
		return CompatibilityResult{}, err
	}

	curApp, err := s.findCurrent(ctx, q.app())
	if err != nil {
		return CompatibilityResult{}, err
	}
	curBox, err := s.findCurrent(ctx, q.box())
	if err != nil {
		return CompatibilityResult{}, err
	}
	latestApp, err := s.findLatest(ctx, q.AppName, q.AppType, CodeLatestAppNotExist)
	if err != nil {
		return CompatibilityResult{}, err
	}
	latestBox, err := s.findLatest(ctx, q.BoxName, q.BoxType, CodeLatestBoxNotExist)
	if err != nil {
		return CompatibilityResult{}, err
	}

	c := &convergence{
		latestApp: latestApp,
		latestBox: latestBox,
		targetApp: curApp,
		targetBox: curBox,
		floor:     floor,
	}

	if curApp.IsForceUpdate {
		if !versionLess(curApp.Version, latestApp.Version) {
			s.log.Error("latest app version is marked as force update", "pkg", curApp.Identity().String())
			return CompatibilityResult{}, inconsistentError(curApp, CodeLatestAppNotExist)
		}
		s.log.Info("app version is marked as force update", "pkg", curApp.Identity().String(),
			"latest", latestApp.Version)
		c.forceApp()
	}

	if curBox.IsForceUpdate {
		if !versionLess(curBox.Version, latestBox.Version) {
			s.log.Error("latest box version is marked as force update", "pkg", curBox.Identity().String())
			return CompatibilityResult{}, inconsistentError(curBox, CodeLatestBoxNotExist)
		}
		s.log.Info("box version is marked as force update", "pkg", curBox.Identity().String(),
			"latest", latestBox.Version)
		c.forceBox()
	}

	s.converge(c)

	return c.result, nil
}

func (s *Service) converge(c *convergence) {
	for pass := 0; pass <= maxReevaluations; pass++ {
		if c.result.IsAppForceUpdate && c.result.IsBoxForceUpdate {
			return
		}
		if !s.convergePass(c) {
			return
		}
	}
}

// convergePass re-checks both directions once and reports whether a flag was raised.
func (s *Service) convergePass(c *convergence) bool {
	changed := false

	minApp := c.floor(c.targetBox)
	if versionLess(c.targetApp.Version, minApp) {
		if c.result.IsAppForceUpdate {
			s.log.Warn("latest app is still below the box minimum",
				"app", c.targetApp.Identity().String(), "min_app_version", minApp)
		} else {
			s.log.Info("app version needs to force upgrade",
				"app", c.targetApp.Identity().String(), "min_app_version", minApp)
			c.forceApp()
			changed = true
		}
	}

	minBox := c.targetApp.MinBoxVersion
	if versionLess(c.targetBox.Version, minBox) {
		if c.result.IsBoxForceUpdate {
			s.log.Warn("latest box is still below the app minimum",
				"box", c.targetBox.Identity().String(), "min_box_version", minBox)
		} else {
			s.log.Info("box version needs to force upgrade",
				"box", c.targetBox.Identity().String(), "min_box_version", minBox)
			c.forceBox()
			changed = true
		}
	}

	return changed
}

func (c *convergence) forceApp() {
	c.result.IsAppForceUpdate = true
	c.result.LatestAppPkg = c.latestApp
	c.targetApp = c.latestApp
}

func (c *convergence) forceBox() {
	c.result.IsBoxForceUpdate = true
	c.result.LatestBoxPkg = c.latestBox
	c.targetBox = c.latestBox
}

func (s *Service) findCurrent(ctx context.Context, id Identity) (*Package, error) {
	p, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			s.log.Warn("current version not found", "pkg", id.String())
			return nil, notFoundError(id, CodeVersionNotExist)
		}
		return nil, fmt.Errorf("find package %s: %w", id, err)
	}
	return p, nil
}

func (s *Service) findLatest(ctx context.Context, name string, typ PkgType, code string) (*Package, error) {
	p, err := s.repo.FindLatest(ctx, name, typ)
	if err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			return nil, notFoundError(Identity{Name: name, Type: typ}, code)
		}
		return nil, fmt.Errorf("find latest %s/%s: %w", name, typ, err)
	}
	return p, nil
}

func inconsistentError(p *Package, code string) *DomainError {
	return &DomainError{
		Err:     ErrLatestVersionInconsistent,
		Message: fmt.Sprintf("package %s is the latest version but is marked as force update", p.Identity()),
		Code:    code,
	}
}
