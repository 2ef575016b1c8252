package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"push-to-memory/internal/registration"
	pkgGithub "push-to-memory/pkg/github"
)

const secretBytes = 32

// generateSecret returns 32 random bytes, hex encoded.
func generateSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (uc *implUseCase) createHook(ctx context.Context, token string, src registration.Source, secret string) (pkgGithub.Hook, error) {
	req := pkgGithub.HookRequest{URL: uc.callbackURL, Secret: secret, Events: []string{"push"}}
	if src.Kind == registration.SourceKindOrganization {
		return uc.github.CreateOrgHook(ctx, token, src.Organization, req)
	}
	return uc.github.CreateRepoHook(ctx, token, src.Owner, src.Repository, req)
}

func (uc *implUseCase) deleteHook(ctx context.Context, token string, src registration.Source, hookID int64) error {
	if src.Kind == registration.SourceKindOrganization {
		return uc.github.DeleteOrgHook(ctx, token, src.Organization, hookID)
	}
	return uc.github.DeleteRepoHook(ctx, token, src.Owner, src.Repository, hookID)
}

// redact strips the shared secret before a registration leaves the use case.
func redact(reg registration.Registration) registration.Registration {
	reg.Secret = ""
	return reg
}
