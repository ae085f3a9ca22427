package gitea

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

/**
 * Repository information (subset of the Gitea API response)
 */
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
}

/**
 * Release asset attached to a release
 */
type Asset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

/**
 * Release information (subset of the Gitea API response)
 */
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	Body    string  `json:"body"`
	Assets  []Asset `json:"assets"`
}

/**
 * Entry of a repository directory listing (contents API)
 */
type ContentsEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type searchResult struct {
	OK   bool         `json:"ok"`
	Data []Repository `json:"data"`
}

/**
 * Gitea store client
 * @description
 * - Thin REST client over the Gitea v1 API
 * - Token, when set, is sent as an Authorization header on every request
 */
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

/**
 * Create new Gitea client
 * @param {string} baseURL - Server base URL, trailing slashes stripped
 * @param {string} token - Optional access token ("" for anonymous access)
 */
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) headers() map[string]string {
	h := map[string]string{"Accept": "application/json"}
	if c.token != "" {
		h["Authorization"] = "token " + c.token
	}
	return h
}

func (c *Client) getJSON(path string, out interface{}) error {
	url := c.baseURL + path
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("gitea: %v", err)
	}
	for k, v := range c.headers() {
		req.Header.Set(k, v)
	}
	rsp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gitea: GET %s failed: %v", url, err)
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != 200 {
		return &APIError{StatusCode: rsp.StatusCode, URL: url}
	}
	return json.NewDecoder(rsp.Body).Decode(out)
}

/**
 * API error carrying the HTTP status code
 * @description
 * - Callers use StatusCode to demote 404/401 to debug-level handling
 */
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitea: request '%s' failed with status %d", e.URL, e.StatusCode)
}

// IsNotFound reports whether err is a 404 API error
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 404
}

// IsUnauthorized reports whether err is a 401/403 API error
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}

/**
 * Fetch repository information
 */
func (c *Client) GetRepo(owner, repo string) (*Repository, error) {
	var r Repository
	if err := c.getJSON(fmt.Sprintf("/api/v1/repos/%s/%s", owner, repo), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

/**
 * Fetch all releases of a repository
 */
func (c *Client) GetReleases(owner, repo string) ([]Release, error) {
	var releases []Release
	if err := c.getJSON(fmt.Sprintf("/api/v1/repos/%s/%s/releases", owner, repo), &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

/**
 * Fetch the latest release of a repository
 * @returns {error} 404 APIError when the repository has no releases
 */
func (c *Client) GetLatestRelease(owner, repo string) (*Release, error) {
	var r Release
	if err := c.getJSON(fmt.Sprintf("/api/v1/repos/%s/%s/releases/latest", owner, repo), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

/**
 * Fetch a release by tag name
 */
func (c *Client) GetReleaseByTag(owner, repo, tag string) (*Release, error) {
	var r Release
	if err := c.getJSON(fmt.Sprintf("/api/v1/repos/%s/%s/releases/tags/%s", owner, repo, tag), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

/**
 * Search accessible repositories
 */
func (c *Client) SearchRepos(limit int) ([]Repository, error) {
	var result searchResult
	if err := c.getJSON(fmt.Sprintf("/api/v1/repos/search?limit=%d", limit), &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

/**
 * List a directory in a repository via the contents API
 * @returns {[]ContentsEntry} Entries with name, path and type (file/dir)
 */
func (c *Client) ListDir(owner, repo, path, ref string) ([]ContentsEntry, error) {
	p := strings.Trim(path, "/")
	var entries []ContentsEntry
	url := fmt.Sprintf("/api/v1/repos/%s/%s/contents/%s?ref=%s", owner, repo, p, ref)
	if err := c.getJSON(url, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

/**
 * Fetch the decoded content of a single file
 */
func (c *Client) GetFileContent(owner, repo, filePath, ref string) ([]byte, error) {
	var entry ContentsEntry
	url := fmt.Sprintf("/api/v1/repos/%s/%s/contents/%s?ref=%s", owner, repo, filePath, ref)
	if err := c.getJSON(url, &entry); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(entry.Content)
	if err != nil {
		return nil, fmt.Errorf("gitea: decode content of '%s' failed: %v", filePath, err)
	}
	return data, nil
}

/**
 * Build the zip archive URL of a repository at a ref
 * @example
 * url := c.ArchiveZipURL("onoffre", "zing-dimmer", "v1.2.0")
 * // <base>/api/v1/repos/onoffre/zing-dimmer/archive/v1.2.0.zip
 */
func (c *Client) ArchiveZipURL(owner, repo, ref string) string {
	return fmt.Sprintf("%s/api/v1/repos/%s/%s/archive/%s.zip", c.baseURL, owner, repo, ref)
}

/**
 * Pick the download asset of a release
 * @param {Release} release - Release to pick from
 * @param {string} assetName - Exact asset name, "" for automatic selection
 * @description
 * - Named asset must exist, otherwise error
 * - Without a name: a single .zip asset wins, then a single asset of any kind
 */
func PickAsset(release *Release, assetName string) (*Asset, error) {
	if len(release.Assets) == 0 {
		return nil, fmt.Errorf("release has no assets; attach a ZIP asset or use zipball mode")
	}

	if assetName != "" {
		for i := range release.Assets {
			if release.Assets[i].Name == assetName {
				return &release.Assets[i], nil
			}
		}
		return nil, fmt.Errorf("asset '%s' not found in release assets", assetName)
	}

	var zips []*Asset
	for i := range release.Assets {
		if strings.HasSuffix(strings.ToLower(release.Assets[i].Name), ".zip") {
			zips = append(zips, &release.Assets[i])
		}
	}
	if len(zips) == 1 {
		return zips[0], nil
	}
	if len(release.Assets) == 1 {
		return &release.Assets[0], nil
	}
	return nil, fmt.Errorf("multiple assets found, specify asset_name")
}

/**
 * Resolve the ref to use for a zipball download
 * @description
 * - Latest release tag when one exists, repo default branch otherwise
 */
func (c *Client) ResolveZipballRef(owner, repo string) (string, error) {
	latest, err := c.GetLatestRelease(owner, repo)
	if err == nil {
		if latest.TagName != "" {
			return latest.TagName, nil
		}
		if latest.Name != "" {
			return latest.Name, nil
		}
	} else if !IsNotFound(err) {
		return "", err
	}
	repoInfo, err := c.GetRepo(owner, repo)
	if err != nil {
		return "", err
	}
	if repoInfo.DefaultBranch == "" {
		return "main", nil
	}
	return repoInfo.DefaultBranch, nil
}
