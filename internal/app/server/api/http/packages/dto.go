package packages

import (
	"mgtboard/internal/domain/pkg"
)

type packageRequest struct {
	Name              string      `json:"pkg_name" minLength:"1" doc:"Package name"`
	Type              pkg.PkgType `json:"pkg_type"`
	Version           string      `json:"pkg_version" minLength:"1" doc:"Package version"`
	Size              int64       `json:"pkg_size,omitempty" minimum:"0" doc:"Package size in bytes"`
	DownloadURL       string      `json:"download_url,omitempty" doc:"Download URL"`
	UpdateDesc        string      `json:"update_desc,omitempty" doc:"Release notes"`
	MD5               string      `json:"md5,omitempty" doc:"Package checksum"`
	IsForceUpdate     bool        `json:"is_force_update,omitempty" doc:"Clients on this version must upgrade"`
	MinAndroidVersion string      `json:"min_android_version,omitempty" doc:"Lowest supported Android app version (box only)"`
	MinIOSVersion     string      `json:"min_ios_version,omitempty" doc:"Lowest supported iOS app version (box only)"`
	MinBoxVersion     string      `json:"min_box_version,omitempty" doc:"Lowest supported box version (apps only)"`
}

func (r packageRequest) toDomain() pkg.Package {
	return pkg.Package{
		Name:              r.Name,
		Type:              r.Type,
		Version:           r.Version,
		Size:              r.Size,
		DownloadURL:       r.DownloadURL,
		UpdateDesc:        r.UpdateDesc,
		MD5:               r.MD5,
		IsForceUpdate:     r.IsForceUpdate,
		MinAndroidVersion: r.MinAndroidVersion,
		MinIOSVersion:     r.MinIOSVersion,
		MinBoxVersion:     r.MinBoxVersion,
	}
}

type saveInput struct {
	Body packageRequest
}

type packageOutput struct {
	Body *pkg.Package
}

type identityInput struct {
	Name    string      `query:"pkg_name" required:"true" doc:"Package name"`
	Type    pkg.PkgType `query:"pkg_type" required:"true"`
	Version string      `query:"pkg_version" required:"true" doc:"Package version"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Status string `json:"status"`
}

type listInput struct {
	Name string      `query:"pkg_name" required:"true" doc:"Package name"`
	Type pkg.PkgType `query:"pkg_type" required:"true"`
}

type listOutput struct {
	Body []pkg.Package
}

type latestBoxInput struct {
	BoxName string      `query:"box_pkg_name" required:"true" doc:"Box package name"`
	BoxType pkg.PkgType `query:"box_pkg_type" required:"true"`
}

type checkInput struct {
	AppName    string      `query:"app_pkg_name" required:"true" doc:"App package name"`
	AppType    pkg.PkgType `query:"app_pkg_type" required:"true"`
	AppVersion string      `query:"cur_app_version" required:"true" doc:"Installed app version"`
	BoxName    string      `query:"box_pkg_name" required:"true" doc:"Box package name"`
	BoxType    pkg.PkgType `query:"box_pkg_type" required:"true"`
	BoxVersion string      `query:"cur_box_version" required:"true" doc:"Installed box version"`
}

func (in *checkInput) query() pkg.CheckQuery {
	return pkg.CheckQuery{
		AppName:    in.AppName,
		AppType:    in.AppType,
		AppVersion: in.AppVersion,
		BoxName:    in.BoxName,
		BoxType:    in.BoxType,
		BoxVersion: in.BoxVersion,
	}
}

type checkOutput struct {
	Body pkg.CheckResult
}

type compatibilityOutput struct {
	Body pkg.CompatibilityResult
}
