// internal/infra/credentials/secret_provider_sm.go
package credentials

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var errSecretProviderNotConfigured = errors.New("credentials: secret provider not configured")

// SecretProvider returns the payload of a Secret Manager secret version.
type SecretProvider interface {
	AccessSecret(ctx context.Context, name string) ([]byte, error)
}

// SecretProviderSM reads secrets with Application Default Credentials.
type SecretProviderSM struct {
	sm *secretmanager.Client
}

// NewSecretProviderSM opens a Secret Manager client (ADC).
func NewSecretProviderSM(ctx context.Context) (*SecretProviderSM, error) {
	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, errors.New("credentials: secretmanager.NewClient failed: " + err.Error())
	}
	return &SecretProviderSM{sm: sm}, nil
}

func (p *SecretProviderSM) AccessSecret(ctx context.Context, name string) ([]byte, error) {
	if p == nil || p.sm == nil {
		return nil, errSecretProviderNotConfigured
	}
	name = NormalizeSecretName(name)
	if name == "" {
		return nil, errors.New("credentials: secret name is empty")
	}

	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, errors.New("credentials: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil || len(resp.Payload.Data) == 0 {
		return nil, errors.New("credentials: empty payload (" + name + ")")
	}
	return resp.Payload.Data, nil
}

func (p *SecretProviderSM) Close() error {
	if p == nil || p.sm == nil {
		return nil
	}
	return p.sm.Close()
}

// NormalizeSecretName appends "/versions/latest" when the resource names a
// secret rather than a version.
//
//	projects/p/secrets/s            -> projects/p/secrets/s/versions/latest
//	projects/p/secrets/s/versions/3 -> unchanged
func NormalizeSecretName(name string) string {
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return ""
	}
	if strings.Contains(name, "/versions/") {
		return name
	}
	return name + "/versions/latest"
}
