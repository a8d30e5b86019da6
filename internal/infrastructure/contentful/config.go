package contentful

import "errors"

// DefaultAPIBaseURL is the Contentful Content Delivery API endpoint
const DefaultAPIBaseURL = "https://cdn.contentful.com"

// DefaultContentType is the content type fetched when none is configured
const DefaultContentType = "product"

// Errors for Contentful configuration
var (
	ErrConfigMissingSpaceID     = errors.New("contentful: space ID is required")
	ErrConfigMissingAccessToken = errors.New("contentful: access token is required")
)

// Config holds configuration for the Contentful Content Delivery API
type Config struct {
	// SpaceID identifies the Contentful space to pull entries from
	SpaceID string
	// AccessToken is the Content Delivery API token
	AccessToken string
	// Environment is the Contentful environment name
	Environment string
	// ContentType is the entry content type to fetch
	ContentType string
	// APIBaseURL is the CDA endpoint
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewConfig creates a Contentful configuration with defaults
func NewConfig(spaceID, accessToken string) *Config {
	return &Config{
		SpaceID:        spaceID,
		AccessToken:    accessToken,
		Environment:    "master",
		ContentType:    DefaultContentType,
		APIBaseURL:     DefaultAPIBaseURL,
		TimeoutSeconds: 30,
	}
}

// IsConfigured reports whether the space and token are both present
func (c *Config) IsConfigured() bool {
	return c.SpaceID != "" && c.AccessToken != ""
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.SpaceID == "" {
		return ErrConfigMissingSpaceID
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.Environment == "" {
		c.Environment = "master"
	}
	if c.ContentType == "" {
		c.ContentType = DefaultContentType
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
