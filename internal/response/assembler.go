package response

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/lysyi3m/mt-api/internal/database"
)

func emptyHead() []any {
	return []any{}
}

// Error builds the error envelope. An empty message falls back to
// DefaultErrorMessage
func Error(message string) Envelope {
	if message == "" {
		message = DefaultErrorMessage
	}
	return Envelope{Error: 1, Head: emptyHead(), Entry: message}
}

func FromError(err error) Envelope {
	if err == nil {
		return Error("")
	}
	return Error(err.Error())
}

func VideoList(page database.VideoPage, start int, refTime int64) Envelope {
	entries := make([]VideoEntry, 0, len(page.Videos))
	for _, v := range page.Videos {
		entries = append(entries, VideoEntry{
			Channel:     v.Channel,
			Theme:       v.Theme,
			Title:       v.Title,
			Description: v.Description,
			Subtitle:    v.Subtitle,
			URL:         v.URL,
			URLSmall:    v.URLSmall,
			URLHD:       v.URLHD,
			DateUnix:    v.DateUnix,
			Duration:    v.Duration,
			Geo:         v.Geo,
			ParseM3U8:   boolToInt(v.ParseM3U8),
		})
	}

	rows := len(entries)
	return Envelope{
		Head: ResultPage{
			Start:   start,
			End:     start + rows - 1,
			Rows:    rows,
			Total:   page.Total,
			RefTime: refTime,
		},
		Entry: entries,
	}
}

func ChannelList(channels []database.ChannelSummary) Envelope {
	entries := make([]ChannelEntry, 0, len(channels))
	for _, c := range channels {
		entries = append(entries, ChannelEntry{
			Channel: c.Channel,
			Count:   c.Count,
			Latest:  c.Latest,
			Oldest:  c.Oldest,
		})
	}

	return Envelope{Head: RowsHead{Rows: len(entries)}, Entry: entries}
}

// LivestreamList strips the word "Livestream" from each title
func LivestreamList(streams []database.LivestreamEntry) Envelope {
	entries := make([]LivestreamEntry, 0, len(streams))
	for _, s := range streams {
		entries = append(entries, LivestreamEntry{
			Title:     strings.TrimSpace(strings.ReplaceAll(s.Title, "Livestream", "")),
			URL:       s.URL,
			ParseM3U8: boolToInt(s.ParseM3U8),
		})
	}

	return Envelope{Head: RowsHead{Rows: len(entries)}, Entry: entries}
}

func ProgInfo(info database.ProgInfo) Envelope {
	entry := ProgInfoEntry{
		Version:     info.Version,
		VDate:       info.VDate,
		MVVersion:   info.MVVersion,
		MVDate:      info.MVDate,
		MVEntries:   info.MVEntries,
		ProgName:    info.ProgName,
		ProgVersion: info.ProgVersion,
		API:         info.API,
		APIVersion:  info.APIVersion,
	}

	return Envelope{Head: emptyHead(), Entry: []ProgInfoEntry{entry}}
}

// Marshal serializes an envelope, indented with tabs when pretty is set
func Marshal(env Envelope, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(env, "", "\t")
	}
	return json.Marshal(env)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
