package api

import (
	"github.com/lysyi3m/mt-api/internal/catalog"
	"github.com/lysyi3m/mt-api/internal/config"
	"github.com/lysyi3m/mt-api/internal/database"
)

// maxPostSize limits the form body carrying the command envelope
const maxPostSize = 32 * 1024

const envelopeField = "data1"

type Handler struct {
	pipeline *catalog.Pipeline
	repo     database.CatalogRepository
	settings *config.Settings
	debugAll bool
	version  string
}

type debugPage struct {
	Title       string
	Version     string
	RequestID   string
	Mode        string
	Request     string
	Queries     []string
	Response    string
	Diagnostics []string
}
