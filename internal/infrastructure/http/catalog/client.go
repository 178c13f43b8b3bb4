package catalog

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"giftshop/internal/config"
	catalogdomain "giftshop/internal/domain/catalog"
	"giftshop/pkg/logger"
)

const maxBodyBytes = 8 << 20

// Client fetches product catalog files from the storefront host. Each
// category lives in its own JSON file of loosely-shaped product
// records.
type Client struct {
	httpClient *http.Client
	cfg        config.CatalogConfig
	log        logger.Logger
}

func NewClient(cfg config.CatalogConfig, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// FetchProducts downloads one catalog file and parses it defensively:
// records that cannot be repaired are dropped, not fatal.
func (c *Client) FetchProducts(ctx context.Context, file string) ([]catalogdomain.Product, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog base url is empty")
	}

	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base url: %w", err)
	}
	u = u.JoinPath(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", file, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog %s status %d", file, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", file, err)
	}

	products, err := catalogdomain.ParseProducts(body)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", file, err)
	}

	c.log.Info("catalog fetched",
		logger.String("file", file),
		logger.Int("products", len(products)))
	return products, nil
}

// FetchAll concatenates the products of several catalog files. A file
// that fails to load is logged and skipped so one bad category does
// not empty the whole feed.
func (c *Client) FetchAll(ctx context.Context, files []string) ([]catalogdomain.Product, error) {
	var all []catalogdomain.Product
	var failed int

	for _, file := range files {
		products, err := c.FetchProducts(ctx, file)
		if err != nil {
			c.log.Warn("catalog file skipped", logger.String("file", file), logger.Error(err))
			failed++
			continue
		}
		all = append(all, products...)
	}

	if failed == len(files) && len(files) > 0 {
		return nil, fmt.Errorf("all %d catalog files failed", failed)
	}
	return all, nil
}
