package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/webfolio/api/feed"
	"github.com/webfolio/api/pkg/cache"
	"github.com/webfolio/api/pkg/portal"
)

var ErrNotFound = errors.New("item not found")

const backendDownKey = "backend:down"
const DefaultCooldown = 30 * time.Second

// Client is the read-side consumer of the items API. Reads degrade to the
// bundled snapshot when the backend is unreachable; writes never degrade and
// surface transport errors directly.
type Client struct {
	BaseURL  string
	http     *portal.Client
	downtime *cache.TTLCache
	cooldown time.Duration
	fallback *Fallback
}

func MakeClient(baseURL string) (*Client, error) {
	fallback, err := LoadFallback()
	if err != nil {
		return nil, err
	}

	transport := portal.NewDefaultClient(nil)
	transport.AbortOnNone2xx = false

	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		http:     transport,
		downtime: cache.NewTTLCache(),
		cooldown: DefaultCooldown,
		fallback: fallback,
	}, nil
}

type ItemsQuery struct {
	Kind   feed.Kind
	Search string
	Page   int
	Limit  int
}

// ItemsPage mirrors the list envelope. Degraded flags pages served from the
// bundled snapshot instead of the backend.
type ItemsPage struct {
	Items    []feed.Item `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	Limit    int         `json:"limit"`
	HasMore  bool        `json:"hasMore"`
	Degraded bool        `json:"degraded"`
}

type listEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    []feed.Item `json:"data"`
	Meta    *struct {
		Total   int64 `json:"total"`
		Page    int   `json:"page"`
		Limit   int   `json:"limit"`
		HasMore bool  `json:"has_more"`
	} `json:"meta"`
}

type itemEnvelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *feed.Item `json:"data"`
}

// GetItems fetches one feed page. Any transport failure opens a cooldown
// window during which subsequent reads skip the network and serve the
// snapshot immediately.
func (c *Client) GetItems(ctx context.Context, query ItemsQuery) (*ItemsPage, error) {
	if c.downtime.Used(backendDownKey) {
		return c.fallback.Items(query), nil
	}

	body, err := c.http.Get(ctx, c.itemsURL(query))
	if err != nil {
		c.downtime.Mark(backendDownKey, c.cooldown)

		return c.fallback.Items(query), nil
	}

	envelope := listEnvelope{}
	if err = json.Unmarshal(body, &envelope); err != nil || !envelope.Success {
		c.downtime.Mark(backendDownKey, c.cooldown)

		return c.fallback.Items(query), nil
	}

	page := ItemsPage{
		Items: envelope.Data,
		Page:  query.Page,
		Limit: query.Limit,
	}

	if envelope.Meta != nil {
		page.Total = envelope.Meta.Total
		page.Page = envelope.Meta.Page
		page.Limit = envelope.Meta.Limit
		page.HasMore = envelope.Meta.HasMore
	}

	return &page, nil
}

// GetItem resolves one item by slug. A clean 404 from the backend is a real
// answer and does not degrade; only transport failures fall back.
func (c *Client) GetItem(ctx context.Context, slug string) (*feed.Item, error) {
	if c.downtime.Used(backendDownKey) {
		return c.fallback.Item(slug)
	}

	target := fmt.Sprintf("%s/items/%s", c.BaseURL, url.PathEscape(slug))

	body, err := c.http.Get(ctx, target)
	if err != nil {
		c.downtime.Mark(backendDownKey, c.cooldown)

		return c.fallback.Item(slug)
	}

	envelope := itemEnvelope{}
	if err = json.Unmarshal(body, &envelope); err != nil {
		c.downtime.Mark(backendDownKey, c.cooldown)

		return c.fallback.Item(slug)
	}

	if !envelope.Success || envelope.Data == nil {
		return nil, fmt.Errorf("no item with slug [%s]: %w", slug, ErrNotFound)
	}

	return envelope.Data, nil
}

func (c *Client) itemsURL(query ItemsQuery) string {
	values := url.Values{}

	if query.Kind != "" {
		values.Set("type", string(query.Kind))
	}

	if strings.TrimSpace(query.Search) != "" {
		values.Set("search", query.Search)
	}

	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}

	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}

	target := c.BaseURL + "/items"
	if encoded := values.Encode(); encoded != "" {
		target += "?" + encoded
	}

	return target
}
