package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lysyi3m/mt-api/internal/metrics"
	"github.com/lysyi3m/mt-api/internal/query"
)

const (
	ChannelsSQL = `SELECT channel, count, latest, oldest FROM channelinfo ORDER BY channel ASC LIMIT ?;`

	LivestreamsSQL = `SELECT title, url, parse_m3u8 FROM video
		WHERE theme LIKE 'Livestream' AND title LIKE '%Livestream%'
		ORDER BY channel ASC, title ASC LIMIT ?;`

	ProgInfoSQL = `SELECT version, vdate, mvversion, mvdate, mventrys, progname, progversion
		FROM version LIMIT 1;`

	videoCountSQL = `SELECT COUNT(id) FROM video;`
)

var _ CatalogRepository = (*CatalogStore)(nil)

// CatalogStore reads the catalog from SQLite. Every call is guarded by the
// breaker; nothing is cached between calls
type CatalogStore struct {
	db      *DB
	breaker *Breaker
}

func NewCatalogStore(db *DB, breaker *Breaker) *CatalogStore {
	return &CatalogStore{db: db, breaker: breaker}
}

func (s *CatalogStore) ListVideos(ctx context.Context, q *query.Query) (VideoPage, error) {
	page := VideoPage{Videos: []VideoRecord{}}

	err := s.breaker.Do(func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return unavailable("begin read transaction", err)
		}
		defer tx.Rollback()

		var errs []error

		total, err := countVideos(ctx, tx, q)
		if err != nil {
			errs = append(errs, err)
		} else {
			page.Total = total
		}

		videos, err := pageVideos(ctx, tx, q)
		if err != nil {
			errs = append(errs, err)
		} else {
			page.Videos = videos
		}

		return errors.Join(errs...)
	})

	return page, err
}

func countVideos(ctx context.Context, tx *sql.Tx, q *query.Query) (int, error) {
	start := time.Now()

	var total int
	err := tx.QueryRowContext(ctx, q.CountSQL(), q.Args()...).Scan(&total)
	observe("count_videos", start, err)
	if err != nil {
		return 0, unavailable("count videos", err)
	}

	return total, nil
}

func pageVideos(ctx context.Context, tx *sql.Tx, q *query.Query) ([]VideoRecord, error) {
	start := time.Now()

	videos, err := scanVideos(ctx, tx, q)
	observe("page_videos", start, err)
	if err != nil {
		return nil, unavailable("list videos", err)
	}

	return videos, nil
}

func scanVideos(ctx context.Context, tx *sql.Tx, q *query.Query) ([]VideoRecord, error) {
	rows, err := tx.QueryContext(ctx, q.PageSQL(), q.PageArgs()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []VideoRecord{}
	for rows.Next() {
		var v VideoRecord
		var parseM3U8 int
		err := rows.Scan(
			&v.Channel, &v.Theme, &v.Title, &v.Description, &v.Website, &v.Subtitle,
			&v.URL, &v.URLSmall, &v.URLHD, &v.URLRTMP, &v.URLRTMPSmall, &v.URLRTMPHD,
			&v.URLHistory, &v.DateUnix, &v.Duration, &v.SizeMB, &v.Geo, &parseM3U8,
		)
		if err != nil {
			return nil, err
		}
		v.ParseM3U8 = parseM3U8 != 0
		videos = append(videos, v)
	}

	return videos, rows.Err()
}

func (s *CatalogStore) ListChannels(ctx context.Context, limit int) ([]ChannelSummary, error) {
	channels := []ChannelSummary{}

	err := s.breaker.Do(func() error {
		start := time.Now()
		rows, err := s.db.QueryContext(ctx, ChannelsSQL, limit)
		if err != nil {
			observe("list_channels", start, err)
			return unavailable("list channels", err)
		}
		defer rows.Close()

		for rows.Next() {
			var c ChannelSummary
			if err := rows.Scan(&c.Channel, &c.Count, &c.Latest, &c.Oldest); err != nil {
				observe("list_channels", start, err)
				return unavailable("scan channel row", err)
			}
			channels = append(channels, c)
		}

		err = rows.Err()
		observe("list_channels", start, err)
		if err != nil {
			return unavailable("iterate channel rows", err)
		}
		return nil
	})

	return channels, err
}

func (s *CatalogStore) ListLivestreams(ctx context.Context, limit int) ([]LivestreamEntry, error) {
	streams := []LivestreamEntry{}

	err := s.breaker.Do(func() error {
		start := time.Now()
		rows, err := s.db.QueryContext(ctx, LivestreamsSQL, limit)
		if err != nil {
			observe("list_livestreams", start, err)
			return unavailable("list livestreams", err)
		}
		defer rows.Close()

		for rows.Next() {
			var l LivestreamEntry
			var parseM3U8 int
			if err := rows.Scan(&l.Title, &l.URL, &parseM3U8); err != nil {
				observe("list_livestreams", start, err)
				return unavailable("scan livestream row", err)
			}
			l.ParseM3U8 = parseM3U8 != 0
			streams = append(streams, l)
		}

		err = rows.Err()
		observe("list_livestreams", start, err)
		if err != nil {
			return unavailable("iterate livestream rows", err)
		}
		return nil
	})

	return streams, err
}

// GetProgInfo returns the first row of the version table. An empty table
// yields a zero ProgInfo and no error
func (s *CatalogStore) GetProgInfo(ctx context.Context) (ProgInfo, error) {
	var info ProgInfo

	err := s.breaker.Do(func() error {
		start := time.Now()
		err := s.db.QueryRowContext(ctx, ProgInfoSQL).Scan(
			&info.Version, &info.VDate, &info.MVVersion, &info.MVDate,
			&info.MVEntries, &info.ProgName, &info.ProgVersion,
		)
		if err == sql.ErrNoRows {
			observe("prog_info", start, nil)
			return nil
		}
		observe("prog_info", start, err)
		if err != nil {
			return unavailable("get program info", err)
		}
		return nil
	})

	return info, err
}

func (s *CatalogStore) GetVideoCount(ctx context.Context) (int, error) {
	var count int

	err := s.breaker.Do(func() error {
		start := time.Now()
		err := s.db.QueryRowContext(ctx, videoCountSQL).Scan(&count)
		observe("video_count", start, err)
		if err != nil {
			return unavailable("get video count", err)
		}
		return nil
	})

	return count, err
}

func observe(operation string, start time.Time, err error) {
	metrics.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueryErrors.WithLabelValues(operation).Inc()
	}
}
