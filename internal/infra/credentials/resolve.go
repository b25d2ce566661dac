// internal/infra/credentials/resolve.go
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ResolveOptions extends LocateOptions with a Secret Manager source.
type ResolveOptions struct {
	LocateOptions

	// projects/{p}/secrets/{s}[/versions/{v}]
	SecretName string

	// nil の場合は必要になった時点で SecretProviderSM を生成する
	Secrets SecretProvider
}

// Resolve loads the service account key.
//
// Explicit and env paths win. Otherwise a configured secret is read from
// Secret Manager; when that fails the scan fallback runs.
func Resolve(ctx context.Context, opts ResolveOptions) (ServiceAccount, error) {
	hasPath := strings.TrimSpace(opts.ExplicitPath) != "" || strings.TrimSpace(opts.EnvPath) != ""
	secret := strings.TrimSpace(opts.SecretName)

	var secretErr error
	if !hasPath && secret != "" {
		sa, err := fromSecret(ctx, opts.Secrets, secret)
		if err == nil {
			return sa, nil
		}
		if ctx.Err() != nil {
			return ServiceAccount{}, err
		}
		log.Printf("[credentials] WARN: secret %s unavailable, falling back to scan: %v", secret, err)
		secretErr = err
	}

	path, err := Locate(opts.LocateOptions)
	if err != nil {
		return ServiceAccount{}, errors.Join(err, secretErr)
	}
	return LoadFile(path)
}

func fromSecret(ctx context.Context, provider SecretProvider, name string) (ServiceAccount, error) {
	if provider == nil {
		sm, err := NewSecretProviderSM(ctx)
		if err != nil {
			return ServiceAccount{}, err
		}
		defer sm.Close()
		provider = sm
	}

	name = NormalizeSecretName(name)
	raw, err := provider.AccessSecret(ctx, name)
	if err != nil {
		return ServiceAccount{}, err
	}
	sa, err := Parse(raw)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("%s: %w", name, err)
	}
	sa.Origin = name
	log.Printf("[credentials] service account loaded from Secret Manager: %s", name)
	return sa, nil
}
