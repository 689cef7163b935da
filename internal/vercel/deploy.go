// Package vercel publishes finished HTML documents to the Vercel
// deployments API and maps the provider record back to the caller.
package vercel

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"retail_promo_server/internal/types"
)

const (
	defaultEndpoint = "https://api.vercel.com"
	defaultSlug     = "site"
	maxSlugLen      = 48
	maxMetaPrompt   = 1024
)

// ErrTokenMissing distinguishes a deploy-time configuration failure from an
// upstream or client-input failure.
var ErrTokenMissing = errors.New("VERCEL_TOKEN is not configured")

// Options carries the provider credentials and targeting read from config.
type Options struct {
	Token       string
	ProjectID   string // takes precedence over ProjectName
	ProjectName string
	TeamID      string // appended as the teamId query parameter when set
}

// Client talks to the Vercel v13 deployments endpoint.
type Client struct {
	opts       Options
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a deployment client. An empty endpoint selects the
// public API host.
func NewClient(opts Options, endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		opts:     opts,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// DeployInput is one deployment request. HTML is mandatory; CompanyName
// drives the deployment name and Prompt travels as request metadata.
type DeployInput struct {
	HTML        string
	CompanyName string
	Prompt      string
}

type deploymentFile struct {
	File     string `json:"file"`
	Data     string `json:"data"`
	Encoding string `json:"encoding"`
}

// projectSettings pins every build step to null so Vercel serves the files
// verbatim instead of trying to detect a framework.
type projectSettings struct {
	Framework       *string `json:"framework"`
	BuildCommand    *string `json:"buildCommand"`
	DevCommand      *string `json:"devCommand"`
	OutputDirectory *string `json:"outputDirectory"`
}

type deploymentPayload struct {
	Name            string            `json:"name"`
	Files           []deploymentFile  `json:"files"`
	ProjectSettings projectSettings   `json:"projectSettings"`
	ProjectID       string            `json:"projectId,omitempty"`
	Project         string            `json:"project,omitempty"`
	Meta            map[string]string `json:"meta,omitempty"`
}

type rewriteRule struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type routingManifest struct {
	Rewrites []rewriteRule `json:"rewrites"`
}

type deploymentRecord struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	InspectorURL string `json:"inspectorUrl"`
}

// Deploy packages the document with a catch-all routing manifest and submits
// it as a single synchronous POST. No retries; a non-2xx response surfaces
// the upstream status code and raw body.
func (c *Client) Deploy(ctx context.Context, in DeployInput) (types.Deployment, error) {
	if c.opts.Token == "" {
		return types.Deployment{}, ErrTokenMissing
	}

	nameSource := in.CompanyName
	if nameSource == "" {
		nameSource = "promo-site"
	}
	deploymentName := Slugify(nameSource) + "-" + uuid.New().String()[:6]

	manifest, err := json.MarshalIndent(routingManifest{
		Rewrites: []rewriteRule{{Source: "/(.*)", Destination: "/index.html"}},
	}, "", "  ")
	if err != nil {
		return types.Deployment{}, fmt.Errorf("failed to marshal routing manifest: %w", err)
	}

	payload := deploymentPayload{
		Name: deploymentName,
		Files: []deploymentFile{
			{
				File:     "index.html",
				Data:     base64.StdEncoding.EncodeToString([]byte(in.HTML)),
				Encoding: "base64",
			},
			{
				File:     "vercel.json",
				Data:     base64.StdEncoding.EncodeToString(manifest),
				Encoding: "base64",
			},
		},
		ProjectSettings: projectSettings{},
	}

	if c.opts.ProjectID != "" {
		payload.ProjectID = c.opts.ProjectID
	} else if c.opts.ProjectName != "" {
		payload.Project = c.opts.ProjectName
	}

	if in.Prompt != "" {
		payload.Meta = map[string]string{"sourcePrompt": truncateUTF8(in.Prompt, maxMetaPrompt)}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return types.Deployment{}, fmt.Errorf("failed to marshal deployment payload: %w", err)
	}

	apiURL := c.endpoint + "/v13/deployments"
	if c.opts.TeamID != "" {
		query := url.Values{}
		query.Set("teamId", c.opts.TeamID)
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return types.Deployment{}, fmt.Errorf("failed to create deployment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.Token)

	log.Printf("Deploying %s to Vercel", deploymentName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Deployment{}, fmt.Errorf("failed to send request to vercel: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Deployment{}, fmt.Errorf("failed to read vercel response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.Deployment{}, fmt.Errorf("vercel api %d: %s", resp.StatusCode, string(body))
	}

	var record deploymentRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return types.Deployment{}, fmt.Errorf("failed to decode vercel response: %w", err)
	}

	result := types.Deployment{}
	if record.ID != "" {
		result.ID = &record.ID
	}
	if record.URL != "" {
		publicURL := "https://" + record.URL
		result.URL = &publicURL
	}
	if record.InspectorURL != "" {
		result.InspectorURL = &record.InspectorURL
	}

	return result, nil
}

// truncateUTF8 caps s at max bytes, backing off to a rune boundary so the
// result stays valid UTF-8.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe deployment name: lowercase, runs of anything
// outside [a-z0-9] collapse to one hyphen, trimmed, capped at 48 characters.
// Names that reduce to nothing become "site".
func Slugify(value string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(value), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return defaultSlug
	}
	return slug
}
