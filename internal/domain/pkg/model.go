package pkg

import (
	"fmt"
	"strings"
	"time"
)

// Package is one released version of an app or of the box firmware.
type Package struct {
	Name              string    `json:"pkg_name" doc:"Package name"`
	Type              PkgType   `json:"pkg_type" doc:"Package type: android, ios or box"`
	Version           string    `json:"pkg_version" doc:"Package version"`
	Size              int64     `json:"pkg_size" doc:"Package size in bytes"`
	DownloadURL       string    `json:"download_url" doc:"Download URL"`
	UpdateDesc        string    `json:"update_desc" doc:"Release notes shown to the user"`
	MD5               string    `json:"md5" doc:"Package checksum"`
	IsForceUpdate     bool      `json:"is_force_update" doc:"Clients on this version must upgrade to the latest one"`
	MinAndroidVersion string    `json:"min_android_version" doc:"Lowest Android app version this box firmware supports"`
	MinIOSVersion     string    `json:"min_ios_version" doc:"Lowest iOS app version this box firmware supports"`
	MinBoxVersion     string    `json:"min_box_version" doc:"Lowest box firmware version this app supports"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Identity is the (name, type, version) key of a package record.
type Identity struct {
	Name    string
	Type    PkgType
	Version string
}

func (p Package) Identity() Identity {
	return Identity{Name: p.Name, Type: p.Type, Version: p.Version}
}

func (id Identity) String() string {
	return fmt.Sprintf("%s/%s@%s", id.Name, id.Type, id.Version)
}

// Validate checks the required fields of a package record.
func (p Package) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: pkg_name is required", ErrInvalidPackage)
	}
	if err := p.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Version) == "" {
		return fmt.Errorf("%w: pkg_version is required", ErrInvalidPackage)
	}
	if p.Size < 0 {
		return fmt.Errorf("%w: pkg_size must not be negative", ErrInvalidPackage)
	}
	return nil
}

// CheckQuery identifies the app and box a client is currently running.
type CheckQuery struct {
	AppName    string
	AppType    PkgType
	AppVersion string
	BoxName    string
	BoxType    PkgType
	BoxVersion string
}

func (q CheckQuery) app() Identity {
	return Identity{Name: q.AppName, Type: q.AppType, Version: q.AppVersion}
}

func (q CheckQuery) box() Identity {
	return Identity{Name: q.BoxName, Type: q.BoxType, Version: q.BoxVersion}
}

// CheckResult is the answer of the one-directional update checks.
type CheckResult struct {
	NewVersionExist bool     `json:"new_version_exist"`
	LatestAppPkg    *Package `json:"latest_app_pkg,omitempty"`
	IsAppNeedUpdate bool     `json:"is_app_need_update"`
	LatestBoxPkg    *Package `json:"latest_box_pkg,omitempty"`
	IsBoxNeedUpdate bool     `json:"is_box_need_update"`
}

// CompatibilityResult tells, for app and box independently, whether a force
// update is required and which package the client has to install.
type CompatibilityResult struct {
	IsAppForceUpdate bool     `json:"is_app_force_update"`
	LatestAppPkg     *Package `json:"latest_app_pkg,omitempty"`
	IsBoxForceUpdate bool     `json:"is_box_force_update"`
	LatestBoxPkg     *Package `json:"latest_box_pkg,omitempty"`
}
