package registry

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var subdomainRe = regexp.MustCompile(`^[a-z0-9-]{1,63}$`)

// RegistryInfo binds a client to a box under a public subdomain.
type RegistryInfo struct {
	BoxUUID    string `json:"box_uuid" minLength:"1" doc:"Box UUID"`
	ClientUUID string `json:"client_uuid" minLength:"1" doc:"Client UUID"`
	Subdomain  string `json:"subdomain" minLength:"1" maxLength:"63" doc:"Subdomain of the box"`
}

// Client is a stored box/client binding.
type Client struct {
	BoxUUID    string    `json:"box_uuid"`
	ClientUUID string    `json:"client_uuid"`
	Subdomain  string    `json:"subdomain"`
	ClientType string    `json:"client_type,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BoxMigrationInfo struct {
	NetworkClientID string              `json:"network_client_id,omitempty" doc:"Network client id; generated when empty"`
	UserInfos       []UserMigrationInfo `json:"user_infos" minItems:"1"`
}

type UserMigrationInfo struct {
	UserID      string                `json:"user_id"`
	UserDomain  string                `json:"user_domain"`
	UserType    string                `json:"user_type"`
	ClientInfos []ClientMigrationInfo `json:"client_infos"`
}

type ClientMigrationInfo struct {
	ClientUUID string `json:"client_uuid"`
	ClientType string `json:"client_type"`
}

type BoxMigrationResult struct {
	BoxUUID         string              `json:"box_uuid"`
	NetworkClientID string              `json:"network_client_id"`
	UserInfos       []UserMigrationInfo `json:"user_infos"`
}

func (r RegistryInfo) Validate() error {
	switch {
	case strings.TrimSpace(r.BoxUUID) == "":
		return invalid(ErrInvalidRegistry, "box_uuid is required")
	case strings.TrimSpace(r.ClientUUID) == "":
		return invalid(ErrInvalidRegistry, "client_uuid is required")
	}
	return validateSubdomain(r.Subdomain, ErrInvalidRegistry)
}

func (m BoxMigrationInfo) Validate() error {
	if len(m.UserInfos) == 0 {
		return invalid(ErrInvalidMigration, "user_infos must not be empty")
	}
	for i, u := range m.UserInfos {
		if strings.TrimSpace(u.UserID) == "" {
			return invalid(ErrInvalidMigration, fmt.Sprintf("user_infos[%d].user_id is required", i))
		}
		if err := validateSubdomain(userSubdomain(u.UserDomain), ErrInvalidMigration); err != nil {
			return invalid(ErrInvalidMigration, fmt.Sprintf("user_infos[%d].user_domain: %v", i, err))
		}
		for j, c := range u.ClientInfos {
			if strings.TrimSpace(c.ClientUUID) == "" {
				return invalid(ErrInvalidMigration,
					fmt.Sprintf("user_infos[%d].client_infos[%d].client_uuid is required", i, j))
			}
		}
	}
	return nil
}

// userSubdomain takes the first label of a user domain, e.g. "alice" from "alice.space.io".
func userSubdomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	label, _, _ := strings.Cut(domain, ".")
	return label
}

func validateSubdomain(s string, kind error) error {
	if !subdomainRe.MatchString(s) {
		return invalid(kind, fmt.Sprintf("subdomain %q must be 1-63 lowercase letters, digits or '-'", s))
	}
	return nil
}

func invalid(kind error, msg string) *DomainError {
	return &DomainError{Err: kind, Message: msg, Code: CodeInvalidInput}
}
