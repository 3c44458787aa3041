package pkg

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type PkgType string

const (
	TypeAndroid PkgType = "android"
	TypeIOS     PkgType = "ios"
	TypeBox     PkgType = "box"
)

func (PkgType) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(TypeAndroid),
			string(TypeIOS),
			string(TypeBox),
		},
		Description: "Package type",
		Examples:    []any{TypeAndroid},
	}
}

// Validate rejects types outside android, ios and box.
func (t PkgType) Validate() error {
	switch t {
	case TypeAndroid, TypeIOS, TypeBox:
		return nil
	}
	return &DomainError{
		Err:     ErrUnsupportedPlatform,
		Message: fmt.Sprintf("unsupported package type %q", string(t)),
		Code:    CodeUnsupportedPlatform,
	}
}

// IsApp reports whether t is a mobile app platform.
func (t PkgType) IsApp() bool {
	_, ok := appVersionFloors[t]
	return ok
}

func (t PkgType) String() string {
	return string(t)
}

// appVersionFloors selects, per app platform, the field of a box record that
// holds the lowest app version the box supports.
var appVersionFloors = map[PkgType]func(*Package) string{
	TypeAndroid: func(box *Package) string { return box.MinAndroidVersion },
	TypeIOS:     func(box *Package) string { return box.MinIOSVersion },
}

func appVersionFloor(platform PkgType) (func(*Package) string, error) {
	floor, ok := appVersionFloors[platform]
	if !ok {
		return nil, &DomainError{
			Err:     ErrUnsupportedPlatform,
			Message: fmt.Sprintf("unsupported app platform %q", string(platform)),
			Code:    CodeUnsupportedPlatform,
		}
	}
	return floor, nil
}
