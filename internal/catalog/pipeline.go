package catalog

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/lysyi3m/mt-api/internal/command"
	"github.com/lysyi3m/mt-api/internal/config"
	"github.com/lysyi3m/mt-api/internal/database"
	"github.com/lysyi3m/mt-api/internal/metrics"
	"github.com/lysyi3m/mt-api/internal/query"
	"github.com/lysyi3m/mt-api/internal/response"
)

const (
	PathDirect   = "direct"
	PathEnvelope = "envelope"

	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeDegraded = "degraded"
)

// Result is the outcome of one request. Envelope is always set; the other
// fields feed the debug page and logs
type Result struct {
	Envelope response.Envelope
	Mode     command.Mode

	// Request is the indented command envelope, empty on the direct path or
	// when the input was not valid JSON
	Request string

	// Queries holds the executed statements rendered with literal values
	Queries []string

	// Diagnostics collects storage failures that were degraded into an
	// empty or partial answer
	Diagnostics []string

	// Err is set when the command was rejected
	Err error
}

func (r *Result) Outcome() string {
	switch {
	case r.Err != nil:
		return OutcomeRejected
	case len(r.Diagnostics) > 0:
		return OutcomeDegraded
	default:
		return OutcomeOK
	}
}

// Pipeline answers catalog requests. It holds no per request state and is
// safe for concurrent use
type Pipeline struct {
	repo       database.CatalogRepository
	validator  *command.Validator
	translator *query.Translator
	settings   *config.Settings
}

func NewPipeline(repo database.CatalogRepository, settings *config.Settings) *Pipeline {
	escaper := query.NewEscaper(query.ParseDialect(settings.Dialect))

	return &Pipeline{
		repo:       repo,
		validator:  command.NewValidator(settings.Signatures),
		translator: query.NewTranslator(escaper, settings.MaxLimit),
		settings:   settings,
	}
}

// Direct answers the queries reachable without a command envelope: program
// info, channel list and livestream list
func (p *Pipeline) Direct(ctx context.Context, mode command.Mode) *Result {
	ctx, cancel := context.WithTimeout(ctx, p.settings.GetQueryTimeout())
	defer cancel()

	result := &Result{Mode: mode}
	limit := p.settings.ListCap

	switch mode {
	case command.ModeInfo:
		info, err := p.repo.GetProgInfo(ctx)
		result.degrade(err)
		info.API = p.settings.API.Name
		info.APIVersion = p.settings.API.Version
		result.Queries = []string{database.ProgInfoSQL}
		result.Envelope = response.ProgInfo(info)

	case command.ModeListChannels:
		channels, err := p.repo.ListChannels(ctx, limit)
		result.degrade(err)
		result.Queries = []string{renderLimit(database.ChannelsSQL, limit)}
		result.Envelope = response.ChannelList(channels)

	case command.ModeListLivestreams:
		streams, err := p.repo.ListLivestreams(ctx, limit)
		result.degrade(err)
		result.Queries = []string{renderLimit(database.LivestreamsSQL, limit)}
		result.Envelope = response.LivestreamList(streams)

	default:
		result.reject(command.ErrUnknownFunction)
	}

	p.record(PathDirect, result)
	return result
}

// Envelope validates a JSON command envelope and runs the command it carries
func (p *Pipeline) Envelope(ctx context.Context, raw []byte) *Result {
	ctx, cancel := context.WithTimeout(ctx, p.settings.GetQueryTimeout())
	defer cancel()

	result := &Result{Request: indent(raw)}

	env, cmd, err := p.validator.Validate(raw)
	if env != nil {
		result.Mode = env.Mode
	}
	if err != nil {
		result.reject(err)
		p.record(PathEnvelope, result)
		return result
	}

	q := p.translator.Translate(*cmd)
	result.Queries = []string{q.RenderCount(), q.RenderPage()}
	slog.Debug("Listing videos", "channel", q.Channel, "ref_time", q.RefTime, "limit", q.Limit, "offset", q.Offset)

	page, err := p.repo.ListVideos(ctx, q)
	result.degrade(err)
	result.Envelope = response.VideoList(page, q.Offset, q.RefTime)

	p.record(PathEnvelope, result)
	return result
}

func (r *Result) reject(err error) {
	r.Err = err
	r.Envelope = response.FromError(err)
}

func (r *Result) degrade(err error) {
	if err == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, err.Error())
}

func (p *Pipeline) record(path string, r *Result) {
	outcome := r.Outcome()
	metrics.RequestsTotal.WithLabelValues(path, r.Mode.String(), outcome).Inc()

	switch outcome {
	case OutcomeRejected:
		slog.Debug("Request rejected", "path", path, "mode", r.Mode.String(), "error", r.Err)
	case OutcomeDegraded:
		slog.Warn("Storage failure, answering with partial result", "path", path, "mode", r.Mode.String(), "diagnostics", r.Diagnostics)
	}

	for _, q := range r.Queries {
		slog.Debug("Catalog query", "path", path, "sql", q)
	}
}

func renderLimit(sql string, limit int) string {
	return strings.Replace(sql, "LIMIT ?", "LIMIT "+strconv.Itoa(limit), 1)
}

func indent(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "\t"); err != nil {
		return ""
	}
	return buf.String()
}
