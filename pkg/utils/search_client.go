package utils

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const maxImageResults = 10

// ImageHit is one image search record.
type ImageHit struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
	Context   string `json:"context"`
	Width     int64  `json:"width"`
	Height    int64  `json:"height"`
}

type ImageSearchInterface interface {
	SearchImages(ctx context.Context, query string, num int) ([]ImageHit, error)
}

// CustomSearchImageClient queries Google Programmable Search in image mode.
type CustomSearchImageClient struct {
	svc *customsearch.Service
	cx  string
}

func NewCustomSearchImageClient(ctx context.Context, apiKey, cx string) (*CustomSearchImageClient, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search client: %w", err)
	}
	return &CustomSearchImageClient{svc: svc, cx: cx}, nil
}

func (c *CustomSearchImageClient) SearchImages(ctx context.Context, query string, num int) ([]ImageHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	if num < 1 {
		num = 1
	}
	if num > maxImageResults {
		num = maxImageResults
	}

	res, err := c.svc.Cse.List().
		Q(query).
		Cx(c.cx).
		SearchType("image").
		ImgType("photo").
		Safe("active").
		Num(int64(num)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("custom search: %w", err)
	}

	hits := make([]ImageHit, 0, len(res.Items))
	for _, item := range res.Items {
		if item == nil {
			continue
		}
		hit := ImageHit{Title: item.Title, Link: item.Link}
		if item.Image != nil {
			hit.Thumbnail = item.Image.ThumbnailLink
			hit.Context = item.Image.ContextLink
			hit.Width = item.Image.Width
			hit.Height = item.Image.Height
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// NoopImageSearch is used when no search credentials are configured.
type NoopImageSearch struct{}

func (NoopImageSearch) SearchImages(context.Context, string, int) ([]ImageHit, error) {
	return nil, ErrImageLookupDisabled
}
