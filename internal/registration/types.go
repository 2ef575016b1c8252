package registration

import (
	"strings"
	"time"
)

// SourceKind distinguishes organization-wide from single-repository webhooks.
type SourceKind string

const (
	SourceKindOrganization SourceKind = "organization"
	SourceKindRepository   SourceKind = "repository"
)

// Source is the GitHub origin of a webhook. Exactly one of the two variants is set:
// Organization for SourceKindOrganization, Owner and Repository for SourceKindRepository.
type Source struct {
	Kind         SourceKind
	Organization string
	Owner        string
	Repository   string
}

// OrganizationSource builds the organization variant. GitHub logins are case-insensitive.
func OrganizationSource(org string) Source {
	return Source{
		Kind:         SourceKindOrganization,
		Organization: strings.ToLower(strings.TrimSpace(org)),
	}
}

// RepositorySource builds the owner/repository variant.
func RepositorySource(owner, repo string) Source {
	return Source{
		Kind:       SourceKindRepository,
		Owner:      strings.ToLower(strings.TrimSpace(owner)),
		Repository: strings.ToLower(strings.TrimSpace(repo)),
	}
}

// Validate reports ErrInvalidSource when the variant is incomplete.
func (s Source) Validate() error {
	switch s.Kind {
	case SourceKindOrganization:
		if s.Organization == "" {
			return ErrInvalidSource
		}
	case SourceKindRepository:
		if s.Owner == "" || s.Repository == "" {
			return ErrInvalidSource
		}
	default:
		return ErrInvalidSource
	}
	return nil
}

// Identifier is the human readable form: "acme" or "octo/app".
func (s Source) Identifier() string {
	if s.Kind == SourceKindOrganization {
		return s.Organization
	}
	return s.Owner + "/" + s.Repository
}

// ID is the storage key of the registration for this source.
// Distinct sources always get distinct keys: names are escaped with escapeKey
// and "." separates owner from repository.
func (s Source) ID() string {
	if s.Kind == SourceKindOrganization {
		return "org-" + escapeKey(s.Organization)
	}
	return "repo-" + escapeKey(s.Owner) + "." + escapeKey(s.Repository)
}

// escapeKey keeps [a-z0-9-] and writes every other byte as "_" plus two hex digits.
// The output never contains "." and is valid in a NATS KV key.
func escapeKey(s string) string {
	const hexDigits = "0123456789abcdef"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('_')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

// Registration is the trust relationship between a Source and the user who connected it.
// Secret never leaves the service after Create.
type Registration struct {
	ID          string
	Source      Source
	HookID      int64
	Secret      string
	OwnerUserID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// --- UseCase Inputs ---

type CreateInput struct {
	Source      Source
	AccessToken string
}

type DeleteInput struct {
	Source      Source
	AccessToken string
}

type ListSourcesInput struct {
	AccessToken string
}

// --- UseCase Outputs ---

// CreateOutput is the only place the shared secret is returned.
type CreateOutput struct {
	Registration Registration
	Secret       string
}

type ListOutput struct {
	Registrations []Registration
}

type RepositoryRef struct {
	Owner    string
	Name     string
	FullName string
	Private  bool
}

type ListSourcesOutput struct {
	Organizations []string
	Repositories  []RepositoryRef
}
