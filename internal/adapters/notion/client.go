package notion

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/httpx"
	"commute-learning-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	notionVersion = "2022-06-28"
	maxBlockPages = 10
)

var ErrMissingAPIKey = errors.New("notion: API key not configured")

// UpstreamError reports which Notion resource ("page" or "blocks") could not be fetched.
type UpstreamError struct {
	Resource string
	PageID   string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fetch notion %s %q: %v", e.Resource, e.PageID, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client fetches Notion pages and reshapes them into learning packs.
// It implements ports.PackFetcher and is safe for concurrent use.
type Client struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
}

// NewClient builds a Notion client limited to ratePerSec outbound requests.
// A non-positive rate disables the limit.
func NewClient(apiKey string, ratePerSec float64) *Client {
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}

	return &Client{
		http:    httpx.NewClient(10*time.Second, limiter),
		apiKey:  apiKey,
		baseURL: "https://api.notion.com",
	}
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type selectOption struct {
	Name string `json:"name"`
}

type property struct {
	Type        string         `json:"type"`
	Title       []richText     `json:"title"`
	MultiSelect []selectOption `json:"multi_select"`
	Select      *selectOption  `json:"select"`
}

type page struct {
	ID             string              `json:"id"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Properties     map[string]property `json:"properties"`
}

type blockPayload struct {
	RichText []richText `json:"rich_text"`
	Caption  []richText `json:"caption"`
}

// block holds the type-keyed payload of a Notion block, e.g. {"type":"code","code":{...}}.
type block struct {
	Type    string
	Payload blockPayload
}

func (b *block) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if t, ok := raw["type"]; ok {
		if err := json.Unmarshal(t, &b.Type); err != nil {
			return fmt.Errorf("decode block type: %w", err)
		}
	}

	if p, ok := raw[b.Type]; ok && b.Type != "" {
		if err := json.Unmarshal(p, &b.Payload); err != nil {
			return fmt.Errorf("decode %s block: %w", b.Type, err)
		}
	}
	return nil
}

type blockList struct {
	Results    []block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// FetchPack loads a page and its top-level blocks and converts them to a pack.
func (c *Client) FetchPack(ctx context.Context, pageID string) (_ domain.LearningPack, err error) {
	defer obs.Time(ctx, "notion.FetchPack")(&err)

	if strings.TrimSpace(c.apiKey) == "" {
		return domain.LearningPack{}, ErrMissingAPIKey
	}

	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return domain.LearningPack{}, errors.New("fetch notion page: page id must be non-empty")
	}

	p, err := c.getPage(ctx, pageID)
	if err != nil {
		return domain.LearningPack{}, &UpstreamError{Resource: "page", PageID: pageID, Err: err}
	}

	blocks, err := c.getBlocks(ctx, pageID)
	if err != nil {
		return domain.LearningPack{}, &UpstreamError{Resource: "blocks", PageID: pageID, Err: err}
	}

	return toLearningPack(pageID, p, blocks), nil
}

func (c *Client) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, endpoint)
	})
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getPage(ctx context.Context, pageID string) (page, error) {
	var p page
	endpoint := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, url.PathEscape(pageID))
	if err := c.getJSON(ctx, endpoint, &p); err != nil {
		return page{}, err
	}
	if p.ID == "" {
		p.ID = pageID
	}
	return p, nil
}

func (c *Client) getBlocks(ctx context.Context, pageID string) ([]block, error) {
	base := fmt.Sprintf("%s/v1/blocks/%s/children", c.baseURL, url.PathEscape(pageID))

	var (
		out    []block
		cursor string
	)
	for i := 0; i < maxBlockPages; i++ {
		q := url.Values{}
		q.Set("page_size", "100")
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}

		var list blockList
		if err := c.getJSON(ctx, base+"?"+q.Encode(), &list); err != nil {
			return nil, err
		}
		out = append(out, list.Results...)

		if !list.HasMore || list.NextCursor == nil || *list.NextCursor == "" {
			break
		}
		cursor = *list.NextCursor
	}

	return out, nil
}
