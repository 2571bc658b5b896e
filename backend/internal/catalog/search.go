package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	apperrors "shopmate/backend/pkg/errors"
	"shopmate/backend/pkg/logger"
)

// Product is a single catalog search result
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Category    string  `json:"category,omitempty"`
	URL         string  `json:"url,omitempty"`
}

// Client searches an external product listing. When no base URL is configured
// it serves a small built-in catalog so the rest of the app stays usable in
// development.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a catalog client. baseURL may be empty.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger.Get(),
	}
}

// Configured reports whether an external search endpoint is set
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Search returns products matching the query
func (c *Client) Search(ctx context.Context, query string) ([]Product, error) {
	if !c.Configured() {
		c.logger.Debug("Catalog search falling back to mock data", zap.String("query", query))
		return mockProducts(query), nil
	}

	searchURL := fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, apperrors.NewCatalogFetchFailed(searchURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewCatalogFetchFailed(searchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewCatalogFetchFailed(searchURL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.NewCatalogFetchFailed(searchURL, err)
	}

	products := parseListing(doc)

	c.logger.Info("Catalog search completed",
		zap.String("query", query),
		zap.Int("results", len(products)),
	)
	return products, nil
}

// parseListing extracts products from a search-results document. The listing
// markup is `.product` items carrying `.title`, `.price` and an anchor.
func parseListing(doc *goquery.Document) []Product {
	var products []Product

	doc.Find(".product").Each(func(i int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find(".title").First().Text())
		if name == "" {
			return
		}

		p := Product{
			ID:          fmt.Sprintf("result_%d", i+1),
			Name:        name,
			Description: strings.TrimSpace(s.Find(".description").First().Text()),
			Category:    strings.TrimSpace(s.Find(".category").First().Text()),
		}

		if href, ok := s.Find("a").First().Attr("href"); ok {
			p.URL = href
		}

		priceText := strings.TrimSpace(s.Find(".price").First().Text())
		if priceText != "" {
			priceText = strings.TrimPrefix(priceText, "$")
			priceText = strings.ReplaceAll(priceText, ",", "")
			var price float64
			if _, err := fmt.Sscanf(priceText, "%f", &price); err == nil {
				p.Price = price
			}
		}

		products = append(products, p)
	})

	return products
}

// mockProducts is the development fallback catalog
func mockProducts(query string) []Product {
	all := []Product{
		{
			ID:          "product_1",
			Name:        "iPhone 15 Pro",
			Description: "Latest iPhone with advanced features",
			Price:       999.99,
			Category:    "electronics",
		},
		{
			ID:          "product_2",
			Name:        "Nike Air Max",
			Description: "Comfortable running shoes",
			Price:       129.99,
			Category:    "clothing",
		},
		{
			ID:          "product_3",
			Name:        "The Pragmatic Programmer",
			Description: "Classic software engineering book",
			Price:       39.99,
			Category:    "books",
		},
		{
			ID:          "product_4",
			Name:        "Adjustable Dumbbell Set",
			Description: "Space-saving home gym weights",
			Price:       249.00,
			Category:    "sports",
		},
	}

	lowered := strings.ToLower(query)
	if lowered == "" {
		return all
	}

	var matched []Product
	for _, p := range all {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
		if strings.Contains(haystack, lowered) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return all
	}
	return matched
}
