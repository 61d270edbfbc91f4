package database

// VideoRecord is one row of the video table. Field order follows the page
// query select list
type VideoRecord struct {
	Channel      string
	Theme        string
	Title        string
	Description  string
	Website      string
	Subtitle     string
	URL          string
	URLSmall     string
	URLHD        string
	URLRTMP      string
	URLRTMPSmall string
	URLRTMPHD    string
	URLHistory   string
	DateUnix     int64
	Duration     int // seconds
	SizeMB       int
	Geo          string
	ParseM3U8    bool
}

type VideoPage struct {
	Videos []VideoRecord
	Total  int
}

type ChannelSummary struct {
	Channel string
	Count   int
	Latest  int64
	Oldest  int64
}

type LivestreamEntry struct {
	Title     string
	URL       string
	ParseM3U8 bool
}

// ProgInfo describes the catalog database version. API and APIVersion are
// filled in by the caller
type ProgInfo struct {
	Version     string
	VDate       int64
	MVVersion   string
	MVDate      int64
	MVEntries   int
	ProgName    string
	ProgVersion string
	API         string
	APIVersion  string
}
