package remote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"i18n-sync/core/reconcile"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	manifestPath  = "/api/At.Locazy/user/i18n/long-polling"
	uploadPath    = "/api/At.Locazy/cli/terms/upload"
	previewHeader = "preview"
	uploadRoot    = "/json/"
)

// Client talks to the translation service. It implements reconcile.Remote.
type Client struct {
	cfg    Config
	http   *resty.Client
	logger *zap.Logger
}

var _ reconcile.Remote = (*Client)(nil)

// New creates a client for cfg.
func New(cfg Config, l *zap.Logger) *Client {
	if l == nil {
		l = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Host, "/")).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{cfg: cfg, http: c, logger: l}
}

type manifestRequest struct {
	ProductCode   string `json:"productCode"`
	SubSystemName string `json:"subSystemName"`
	VersionNo     string `json:"versionNo"`
}

type fileGroup struct {
	PathPrefix   string   `json:"pathPrefix"`
	LanguageCode string   `json:"languageCode"`
	FileNames    []string `json:"fileNames"`
}

type manifestResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		FileGroups []fileGroup `json:"fileGroups"`
	} `json:"data"`
}

type uploadRequest struct {
	SubSystemName string            `json:"subSystemName"`
	ProductCode   string            `json:"productCode"`
	LanguageCode  string            `json:"languageCode"`
	Path          string            `json:"path"`
	VersionNo     string            `json:"versionNo"`
	TermAndText   map[string]string `json:"termAndText"`
}

type uploadResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FetchManifest lists the translation files of every language.
// Groups are returned in response order, one Source per group.
func (c *Client) FetchManifest(ctx context.Context) ([]reconcile.Source, error) {
	c.logger.Info("Fetching translation config",
		zap.String("sub_system", c.cfg.SubSystemName),
		zap.String("product", c.cfg.ProductCode),
		zap.String("version", c.cfg.VersionNo),
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(previewHeader, c.cfg.Preview).
		SetBody(manifestRequest{
			ProductCode:   c.cfg.ProductCode,
			SubSystemName: c.cfg.SubSystemName,
			VersionNo:     c.cfg.VersionNo,
		}).
		Post(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("sending manifest request: %w", err)
	}
	if !resp.IsSuccess() {
		apiErr := newAPIError(resp.Request.URL, resp.StatusCode(), resp.Body())
		c.logger.Error("API request failed", zap.String("url", apiErr.URL), zap.Error(apiErr))
		return nil, apiErr
	}

	var manifest manifestResponse
	if err := json.Unmarshal(resp.Body(), &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest response: %w", err)
	}
	if manifest.Code != 0 {
		return nil, &APIError{
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Code:       manifest.Code,
			Message:    manifest.Message,
		}
	}

	sources := make([]reconcile.Source, 0, len(manifest.Data.FileGroups))
	files := 0
	for _, group := range manifest.Data.FileGroups {
		src := reconcile.Source{LanguageCode: group.LanguageCode}
		for _, name := range group.FileNames {
			src.Locators = append(src.Locators, reconcile.Locator{PathPrefix: group.PathPrefix, FileName: name})
		}
		files += len(group.FileNames)
		sources = append(sources, src)
	}

	c.logger.Info("Got translation manifest",
		zap.Int("language_groups", len(sources)),
		zap.Int("files", files),
	)
	return sources, nil
}

// FetchBlob downloads one translation file.
func (c *Client) FetchBlob(ctx context.Context, loc reconcile.Locator) ([]byte, error) {
	path := blobPath(loc)
	c.logger.Debug("Downloading translation", zap.String("path", path))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(previewHeader, c.cfg.Preview).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		apiErr := &APIError{URL: resp.Request.URL, StatusCode: resp.StatusCode()}
		c.logger.Error("API request failed", zap.String("url", apiErr.URL), zap.Int("status", apiErr.StatusCode))
		return nil, apiErr
	}
	return resp.Body(), nil
}

// SubmitDelta uploads flat key/value pairs for one language file.
func (c *Client) SubmitDelta(ctx context.Context, languageCode, relativePath string, delta map[string]string) error {
	body := uploadRequest{
		SubSystemName: c.cfg.SubSystemName,
		ProductCode:   c.cfg.ProductCode,
		LanguageCode:  languageCode,
		Path:          uploadRoot + strings.TrimPrefix(relativePath, "/"),
		VersionNo:     c.cfg.VersionNo,
		TermAndText:   delta,
	}

	c.logger.Info("Uploading translation",
		zap.String("language", languageCode),
		zap.String("path", relativePath),
		zap.Int("keys", len(delta)),
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(uploadPath)
	if err != nil {
		return fmt.Errorf("sending upload request: %w", err)
	}
	if !resp.IsSuccess() {
		apiErr := newAPIError(resp.Request.URL, resp.StatusCode(), resp.Body())
		c.logger.Error("API request failed", zap.String("url", apiErr.URL), zap.Error(apiErr))
		return apiErr
	}

	if len(resp.Body()) == 0 {
		return nil
	}
	var result uploadResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("decoding upload response: %w", err)
	}
	if result.Code != 0 {
		return &APIError{
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Code:       result.Code,
			Message:    result.Message,
		}
	}
	return nil
}

// blobPath joins a locator into a URL path below the host.
func blobPath(loc reconcile.Locator) string {
	prefix := strings.Trim(loc.PathPrefix, "/")
	if prefix == "" {
		return "/" + loc.FileName
	}
	return "/" + prefix + "/" + loc.FileName
}
