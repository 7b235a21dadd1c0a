package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"yatra/internal/models/response_models"
	mem "yatra/pkg/memcache"
	"yatra/pkg/utils"
)

const (
	activityImageLimit = 3
	outfitImageLimit   = 4
	hotelImageLimit    = 3
)

// imageLookup wraps the search collaborator for one pipeline call. Results are
// memoized per normalized query, and a failed lookup is cached as empty.
type imageLookup struct {
	search utils.ImageSearchInterface
	cache  *mem.QueryCache[[]utils.ImageHit]
	log    *zap.Logger
}

func newImageLookup(search utils.ImageSearchInterface, log *zap.Logger) *imageLookup {
	return &imageLookup{
		search: search,
		cache:  mem.NewQueryCache[[]utils.ImageHit](),
		log:    log,
	}
}

func (l *imageLookup) find(ctx context.Context, query string, num int) []utils.ImageHit {
	query = strings.TrimSpace(query)
	if query == "" || l.search == nil {
		return nil
	}
	hits, _ := l.cache.GetOrLoad(ctx, query, func(ctx context.Context, q string) ([]utils.ImageHit, error) {
		found, err := l.search.SearchImages(ctx, q, num)
		if err != nil {
			l.log.Debug("image lookup failed", zap.String("query", q), zap.Error(err))
			return []utils.ImageHit{}, nil
		}
		return found, nil
	})
	return hits
}

// hero returns the first hit exposing a link.
func (l *imageLookup) hero(ctx context.Context, query string, num int) (utils.ImageHit, bool) {
	for _, hit := range l.find(ctx, query, num) {
		if strings.TrimSpace(hit.Link) != "" {
			return hit, true
		}
	}
	return utils.ImageHit{}, false
}

// AttachActivityImages fills each activity's images from a location or title
// lookup. Activities that already carry images are left alone.
func AttachActivityImages(ctx context.Context, it *response_models.Itinerary, search utils.ImageSearchInterface, log *zap.Logger) {
	lookup := newImageLookup(search, log)
	for d := range it.Days {
		for a := range it.Days[d].Activities {
			if ctx.Err() != nil {
				return
			}
			activity := &it.Days[d].Activities[a]
			if len(activity.Images) > 0 {
				continue
			}
			key := activity.Location
			if key == "" {
				key = activity.Title
			}
			images := []response_models.ImageRef{}
			for _, hit := range lookup.find(ctx, key+" travel photo", activityImageLimit) {
				if hit.Link == "" {
					continue
				}
				images = append(images, response_models.ImageRef{
					ImageURL:     hit.Link,
					ThumbnailURL: hit.Thumbnail,
					ContextURL:   hit.Context,
					Title:        hit.Title,
				})
			}
			activity.Images = images
		}
	}
}
