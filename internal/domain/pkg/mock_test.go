package pkg

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Find(ctx context.Context, id Identity) (*Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Package), args.Error(1)
}

func (m *MockRepository) FindLatest(ctx context.Context, name string, typ PkgType) (*Package, error) {
	args := m.Called(ctx, name, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Package), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, name string, typ PkgType) ([]Package, error) {
	args := m.Called(ctx, name, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Package), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Package) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Package) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id Identity) error {
	return m.Called(ctx, id).Error(0)
}

// memRepository is an in-memory Repository with the same ordering rules as the SQL stores.
type memRepository struct {
	pkgs map[Identity]Package
}

func newMemRepository(pkgs ...Package) *memRepository {
	r := &memRepository{pkgs: make(map[Identity]Package)}
	for _, p := range pkgs {
		r.pkgs[p.Identity()] = p
	}
	return r
}

func (r *memRepository) Find(_ context.Context, id Identity) (*Package, error) {
	p, ok := r.pkgs[id]
	if !ok {
		return nil, ErrVersionNotFound
	}
	return &p, nil
}

func (r *memRepository) FindLatest(_ context.Context, name string, typ PkgType) (*Package, error) {
	var latest *Package
	for _, p := range r.pkgs {
		if p.Name != name || p.Type != typ {
			continue
		}
		if latest == nil || CompareVersions(p.Version, latest.Version) > 0 {
			p := p
			latest = &p
		}
	}
	if latest == nil {
		return nil, ErrVersionNotFound
	}
	return latest, nil
}

func (r *memRepository) List(_ context.Context, name string, typ PkgType) ([]Package, error) {
	var out []Package
	for _, p := range r.pkgs {
		if p.Name == name && p.Type == typ {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memRepository) Create(_ context.Context, p *Package) error {
	if _, ok := r.pkgs[p.Identity()]; ok {
		return ErrDuplicateVersion
	}
	r.pkgs[p.Identity()] = *p
	return nil
}

func (r *memRepository) Update(_ context.Context, p *Package) error {
	if _, ok := r.pkgs[p.Identity()]; !ok {
		return ErrVersionNotFound
	}
	r.pkgs[p.Identity()] = *p
	return nil
}

func (r *memRepository) Delete(_ context.Context, id Identity) error {
	delete(r.pkgs, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, pkgs ...Package) (*Service, *memRepository) {
	t.Helper()
	repo := newMemRepository(pkgs...)
	svc := NewService(repo, discardLogger())
	require.NotNil(t, svc)
	return svc, repo
}

func app(version string) Package {
	return Package{Name: "space", Type: TypeAndroid, Version: version}
}

func box(version string) Package {
	return Package{Name: "spacebox", Type: TypeBox, Version: version}
}

func query(appVersion, boxVersion string) CheckQuery {
	return CheckQuery{
		AppName:    "space",
		AppType:    TypeAndroid,
		AppVersion: appVersion,
		BoxName:    "spacebox",
		BoxType:    TypeBox,
		BoxVersion: boxVersion,
	}
}
