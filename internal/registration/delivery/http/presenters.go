package http

import (
	"push-to-memory/internal/registration"
	"push-to-memory/pkg/response"
)

// --- Request DTOs ---

type sourceReq struct {
	Kind         string `json:"kind"         binding:"required"`
	Organization string `json:"organization"`
	Owner        string `json:"owner"`
	Repository   string `json:"repository"`
	AccessToken  string `json:"access_token" binding:"required"`
}

func (r sourceReq) validate() error {
	switch registration.SourceKind(r.Kind) {
	case registration.SourceKindOrganization, registration.SourceKindRepository:
		return nil
	default:
		return errInvalidKind
	}
}

func (r sourceReq) toSource() registration.Source {
	if registration.SourceKind(r.Kind) == registration.SourceKindOrganization {
		return registration.OrganizationSource(r.Organization)
	}
	return registration.RepositorySource(r.Owner, r.Repository)
}

type createReq struct {
	sourceReq
}

func (r createReq) toInput() registration.CreateInput {
	return registration.CreateInput{Source: r.toSource(), AccessToken: r.AccessToken}
}

type deleteReq struct {
	sourceReq
}

func (r deleteReq) toInput() registration.DeleteInput {
	return registration.DeleteInput{Source: r.toSource(), AccessToken: r.AccessToken}
}

type listSourcesReq struct {
	AccessToken string `json:"access_token" binding:"required"`
}

func (r listSourcesReq) toInput() registration.ListSourcesInput {
	return registration.ListSourcesInput{AccessToken: r.AccessToken}
}

// --- Response DTOs ---

// registrationResp deliberately has no secret field.
type registrationResp struct {
	ID           string            `json:"id"`
	Kind         string            `json:"kind"`
	Organization string            `json:"organization,omitempty"`
	Owner        string            `json:"owner,omitempty"`
	Repository   string            `json:"repository,omitempty"`
	Source       string            `json:"source"`
	HookID       int64             `json:"hook_id"`
	CreatedAt    response.DateTime `json:"created_at"`
	UpdatedAt    response.DateTime `json:"updated_at"`
}

func newRegistrationResp(reg registration.Registration) registrationResp {
	return registrationResp{
		ID:           reg.ID,
		Kind:         string(reg.Source.Kind),
		Organization: reg.Source.Organization,
		Owner:        reg.Source.Owner,
		Repository:   reg.Source.Repository,
		Source:       reg.Source.Identifier(),
		HookID:       reg.HookID,
		CreatedAt:    response.DateTime(reg.CreatedAt),
		UpdatedAt:    response.DateTime(reg.UpdatedAt),
	}
}

type createResp struct {
	Registration registrationResp `json:"registration"`
	Secret       string           `json:"secret"`
}

func (h *handler) newCreateResp(out registration.CreateOutput) createResp {
	return createResp{
		Registration: newRegistrationResp(out.Registration),
		Secret:       out.Secret,
	}
}

type listResp struct {
	Registrations []registrationResp `json:"registrations"`
}

func (h *handler) newListResp(out registration.ListOutput) listResp {
	regs := make([]registrationResp, len(out.Registrations))
	for i, reg := range out.Registrations {
		regs[i] = newRegistrationResp(reg)
	}
	return listResp{Registrations: regs}
}

type repositoryResp struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
}

type listSourcesResp struct {
	Organizations []string         `json:"organizations"`
	Repositories  []repositoryResp `json:"repositories"`
}

func (h *handler) newListSourcesResp(out registration.ListSourcesOutput) listSourcesResp {
	repos := make([]repositoryResp, len(out.Repositories))
	for i, r := range out.Repositories {
		repos[i] = repositoryResp{Owner: r.Owner, Name: r.Name, FullName: r.FullName, Private: r.Private}
	}
	orgs := out.Organizations
	if orgs == nil {
		orgs = []string{}
	}
	return listSourcesResp{Organizations: orgs, Repositories: repos}
}
