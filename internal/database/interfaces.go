package database

import (
	"context"

	"github.com/lysyi3m/mt-api/internal/query"
)

type CatalogRepository interface {
	// ListVideos runs the count and page statements of q in one read
	// transaction. The returned page is always usable: a failed count leaves
	// Total at 0 and a failed page leaves Videos empty, with the failure
	// reported through the error
	ListVideos(ctx context.Context, q *query.Query) (VideoPage, error)
	ListChannels(ctx context.Context, limit int) ([]ChannelSummary, error)
	ListLivestreams(ctx context.Context, limit int) ([]LivestreamEntry, error)
	GetProgInfo(ctx context.Context) (ProgInfo, error)
	GetVideoCount(ctx context.Context) (int, error)
}
