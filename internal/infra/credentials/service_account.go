// internal/infra/credentials/service_account.go
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrInvalidServiceAccount = errors.New("credentials: invalid service account json")

// ServiceAccount is the decoded subset of a Google service account key.
// Raw keeps the original bytes for option.WithCredentialsJSON.
type ServiceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`

	Raw []byte `json:"-"`
	// file path or secret resource name (log 用)
	Origin string `json:"-"`
}

// Parse decodes and validates a service account key.
func Parse(raw []byte) (ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return ServiceAccount{}, fmt.Errorf("%w: %v", ErrInvalidServiceAccount, err)
	}
	sa.Type = strings.TrimSpace(sa.Type)
	sa.ProjectID = strings.TrimSpace(sa.ProjectID)
	sa.ClientEmail = strings.TrimSpace(sa.ClientEmail)

	if sa.Type != "" && sa.Type != "service_account" {
		return ServiceAccount{}, fmt.Errorf("%w: type is %q (want service_account)", ErrInvalidServiceAccount, sa.Type)
	}
	if sa.ProjectID == "" {
		return ServiceAccount{}, fmt.Errorf("%w: project_id is empty", ErrInvalidServiceAccount)
	}
	if sa.ClientEmail == "" {
		return ServiceAccount{}, fmt.Errorf("%w: client_email is empty", ErrInvalidServiceAccount)
	}

	sa.Raw = append([]byte(nil), raw...)
	return sa, nil
}

// LoadFile reads and parses the key at path.
func LoadFile(path string) (ServiceAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("credentials: read %s: %w", path, err)
	}
	sa, err := Parse(raw)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("%s: %w", path, err)
	}
	sa.Origin = path
	return sa, nil
}
