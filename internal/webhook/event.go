package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	gh "github.com/google/go-github/v66/github"

	"push-to-memory/internal/reflection"
	"push-to-memory/internal/registration"
)

// sourcePayload is the subset of every GitHub delivery that identifies where it came from.
type sourcePayload struct {
	Organization *struct {
		Login string `json:"login"`
	} `json:"organization"`
	Repository *struct {
		Name  string `json:"name"`
		Owner struct {
			Name  string `json:"name"`
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
}

// SourcesFromPayload extracts the organization and owner/repository named by a delivery.
func SourcesFromPayload(body []byte) (Sources, error) {
	var p sourcePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return Sources{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var s Sources
	if p.Organization != nil && p.Organization.Login != "" {
		s.Organization = registration.OrganizationSource(p.Organization.Login)
	}
	if p.Repository != nil && p.Repository.Name != "" {
		owner := p.Repository.Owner.Name
		if owner == "" {
			owner = p.Repository.Owner.Login
		}
		if owner != "" {
			s.Repository = registration.RepositorySource(owner, p.Repository.Name)
		}
	}

	if s.Organization.Kind == "" && s.Repository.Kind == "" {
		return Sources{}, fmt.Errorf("%w: no organization or repository", ErrMalformedPayload)
	}
	return s, nil
}

// ParseEvent decodes ping and push deliveries. Every other type is returned as UnknownEvent unparsed.
func ParseEvent(eventType string, body []byte) (Event, error) {
	switch eventType {
	case "ping", "push":
	default:
		return UnknownEvent{Type: eventType}, nil
	}

	raw, err := gh.ParseWebHook(eventType, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch e := raw.(type) {
	case *gh.PingEvent:
		return PingEvent{HookID: e.GetHookID(), Zen: e.GetZen()}, nil
	case *gh.PushEvent:
		return PushEvent{
			RepositoryName: e.GetRepo().GetName(),
			Commits:        toCommits(e.Commits, rawTimestamps(body)),
		}, nil
	default:
		return UnknownEvent{Type: eventType}, nil
	}
}

// rawTimestamps returns the commit timestamps of a push body in delivery order, exactly as GitHub wrote them.
// Entries that are not JSON strings are left empty.
func rawTimestamps(body []byte) []string {
	var p struct {
		Commits []struct {
			Timestamp json.RawMessage `json:"timestamp"`
		} `json:"commits"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil
	}
	out := make([]string, len(p.Commits))
	for i, c := range p.Commits {
		var ts string
		if json.Unmarshal(c.Timestamp, &ts) == nil {
			out[i] = ts
		}
	}
	return out
}

// toCommits keeps the received timestamp text when there is one and otherwise formats the decoded time.
func toCommits(in []*gh.HeadCommit, stamps []string) []reflection.Commit {
	out := make([]reflection.Commit, 0, len(in))
	for i, c := range in {
		if c == nil {
			continue
		}
		commit := reflection.Commit{
			ID:       c.GetID(),
			Message:  c.GetMessage(),
			URL:      c.GetURL(),
			Added:    c.Added,
			Modified: c.Modified,
			Removed:  c.Removed,
			Author: reflection.Author{
				Name:  c.GetAuthor().GetName(),
				Email: c.GetAuthor().GetEmail(),
			},
		}
		switch ts := c.GetTimestamp(); {
		case i < len(stamps) && stamps[i] != "":
			commit.Timestamp = stamps[i]
		case !ts.IsZero():
			commit.Timestamp = ts.Format(time.RFC3339)
		}
		out = append(out, commit)
	}
	return out
}
