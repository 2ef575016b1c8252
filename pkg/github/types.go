package github

import (
	"errors"
	"net/http"
	"time"
)

const (
	DefaultTimeout = 15 * time.Second

	hookName        = "web"
	hookContentType = "json"
	// maxListPages bounds pagination for users with a very large number of repositories.
	maxListPages = 10
	perPage      = 100
)

var (
	ErrMissingToken = errors.New("github: access token is required")
	ErrMissingURL   = errors.New("github: hook url is required")
)

// Config holds GitHub client settings. An empty APIURL targets api.github.com.
type Config struct {
	APIURL     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func (c Config) validate() error {
	if c.Timeout < 0 {
		return errors.New("github: timeout must not be negative")
	}
	return nil
}

// HookRequest describes the webhook to create. Events defaults to ["push"].
type HookRequest struct {
	URL    string
	Secret string
	Events []string
}

// Hook is a created webhook.
type Hook struct {
	ID     int64
	URL    string
	Events []string
	Active bool
}

type Organization struct {
	Login       string
	Description string
}

type Repository struct {
	Owner    string
	Name     string
	FullName string
	Private  bool
	HTMLURL  string
}
