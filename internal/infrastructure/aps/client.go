// Package aps implements the thin HTTP client for the Autodesk Platform
// Services data-management and model-derivative APIs. One method per
// endpoint; every request forwards the caller's bearer token; any non-2xx
// response is an *APIError, except a manifest or thumbnail 404, which means
// "not yet translated" and is a valid terminal state, not a failure.
package aps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	entities "github.com/buildsight/hubview-go/internal/domain/entities/aps"
	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
)

// maxErrorBodyBytes caps how much of an error response body is kept for logs.
const maxErrorBodyBytes = 2048

// Client is the remote APS API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.ChanneledLogger
}

// NewClient creates an APS client against the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *logging.ChanneledLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// escapeResourceID percent-encodes data-management resource IDs. Folder and
// item IDs carry ':' and '/' characters that cannot appear raw in a path
// segment of the contents and versions endpoints.
func escapeResourceID(id string) string {
	return strings.ReplaceAll(url.QueryEscape(id), "+", "%20")
}

// ListHubs retrieves the hubs the token has access to.
// Corresponds to: GET /project/v1/hubs
func (c *Client) ListHubs(ctx context.Context, token string) (*entities.ResourceList, error) {
	var list entities.ResourceList
	if err := c.getJSON(ctx, token, "/project/v1/hubs", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListProjects retrieves the projects within a hub.
// Corresponds to: GET /project/v1/hubs/{hubId}/projects
func (c *Client) ListProjects(ctx context.Context, token, hubID string) (*entities.ResourceList, error) {
	path := fmt.Sprintf("/project/v1/hubs/%s/projects", hubID)
	var list entities.ResourceList
	if err := c.getJSON(ctx, token, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListTopFolders retrieves the top-level folders of a project.
// Corresponds to: GET /project/v1/hubs/{hubId}/projects/{projectId}/topFolders
func (c *Client) ListTopFolders(ctx context.Context, token, hubID, projectID string) (*entities.ResourceList, error) {
	path := fmt.Sprintf("/project/v1/hubs/%s/projects/%s/topFolders", hubID, projectID)
	var list entities.ResourceList
	if err := c.getJSON(ctx, token, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListFolderContents retrieves the files and subfolders of a folder. The
// folder ID is percent-encoded before use in the path.
// Corresponds to: GET /data/v1/projects/{projectId}/folders/{folderId}/contents
func (c *Client) ListFolderContents(ctx context.Context, token, projectID, folderID string) (*entities.ResourceList, error) {
	path := fmt.Sprintf("/data/v1/projects/%s/folders/%s/contents", projectID, escapeResourceID(folderID))
	var list entities.ResourceList
	if err := c.getJSON(ctx, token, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListItemVersions retrieves all versions of an item, most recent first per
// the API's own ordering. The item ID is percent-encoded before use.
// Corresponds to: GET /data/v1/projects/{projectId}/items/{itemId}/versions
func (c *Client) ListItemVersions(ctx context.Context, token, projectID, itemID string) (*entities.ResourceList, error) {
	path := fmt.Sprintf("/data/v1/projects/%s/items/%s/versions", projectID, escapeResourceID(itemID))
	var list entities.ResourceList
	if err := c.getJSON(ctx, token, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetManifest retrieves the translation manifest for a design URN. A 404
// means the design was never submitted for translation; that is a valid
// terminal state and returns (nil, nil).
// Corresponds to: GET /modelderivative/v2/designdata/{urn}/manifest
func (c *Client) GetManifest(ctx context.Context, token, urn string) (*entities.Manifest, error) {
	path := fmt.Sprintf("/modelderivative/v2/designdata/%s/manifest", EncodeURN(urn))

	resp, err := c.get(ctx, token, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.APS().Info("No derivative manifest found; design has not been translated", "urn", urn)
		return nil, nil
	}
	if err := c.checkStatus(resp, path); err != nil {
		return nil, err
	}

	var manifest entities.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest for %s: %w", urn, err)
	}
	return &manifest, nil
}

// GetMetadata retrieves the model-view metadata listing for a design URN.
// Corresponds to: GET /modelderivative/v2/designdata/{urn}/metadata
func (c *Client) GetMetadata(ctx context.Context, token, urn string) (*entities.MetadataEnvelope, error) {
	path := fmt.Sprintf("/modelderivative/v2/designdata/%s/metadata", EncodeURN(urn))
	var envelope entities.MetadataEnvelope
	if err := c.getJSON(ctx, token, path, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// GetThumbnail retrieves the rendered thumbnail for a design URN. Like the
// manifest, a 404 means no thumbnail exists yet and returns (nil, nil).
// Corresponds to: GET /modelderivative/v2/designdata/{urn}/thumbnail
func (c *Client) GetThumbnail(ctx context.Context, token, urn string, width int) ([]byte, error) {
	path := fmt.Sprintf("/modelderivative/v2/designdata/%s/thumbnail", EncodeURN(urn))
	if width > 0 {
		path = fmt.Sprintf("%s?width=%d", path, width)
	}

	resp, err := c.get(ctx, token, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := c.checkStatus(resp, path); err != nil {
		return nil, err
	}

	return io.ReadAll(resp.Body)
}

// get issues one synchronous GET with the bearer token attached.
func (c *Client) get(ctx context.Context, token, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	return resp, nil
}

// getJSON issues a GET and decodes a 2xx response into out.
func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	resp, err := c.get(ctx, token, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, path); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// checkStatus converts a non-2xx response into an *APIError.
func (c *Client) checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   path,
		Body:       strings.TrimSpace(string(body)),
	}
	c.logger.APS().Warn("APS request failed", "endpoint", path, "status", resp.StatusCode)
	return apiErr
}
