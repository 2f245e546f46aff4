package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

var _ domain.ContentSource = (*Client)(nil)

// Client fetches per-language habit documents from the remote content
// service: GET {base}/habits/<dataset>-<language>.json. Non-200 responses and
// non-array bodies are fetch failures, never empty-but-valid data.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
}

func NewClient(baseURL, dataset string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		dataset:    dataset,
	}
}

func (c *Client) FetchLanguage(ctx context.Context, lang domain.LanguageCode) ([]domain.RawHabitRecord, error) {
	url := fmt.Sprintf("%s/habits/%s-%s.json", c.baseURL, c.dataset, lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrContentFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrContentFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrContentFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrContentFetch, url, err)
	}

	var records []domain.RawHabitRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %s is not a habit array: %v", domain.ErrContentBadShape, url, err)
	}

	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("document %s: %w", url, err)
		}
	}

	return records, nil
}
