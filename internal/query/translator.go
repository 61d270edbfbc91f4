package query

import (
	"strings"
	"time"

	"github.com/lysyi3m/mt-api/internal/command"
)

const (
	VideoTable       = "video"
	ChannelMaxLength = 128
)

// VideoColumns is the select list of the page query. Rows are mapped by
// position, so the order is fixed
var VideoColumns = []string{
	"channel", "theme", "title", "description", "website", "subtitle",
	"url", "url_small", "url_hd", "url_rtmp", "url_rtmp_small", "url_rtmp_hd",
	"url_history", "date_unix", "duration", "size_mb", "geo", "parse_m3u8",
}

type condition struct {
	column  string
	op      string
	arg     any
	literal string
}

// Query is a translated list videos command. The count and page statements
// share one filter so that the total always matches the page
type Query struct {
	Channel string
	RefTime int64
	Limit   int
	Offset  int
	Window  Window

	escaper *Escaper
	conds   []condition
}

type Translator struct {
	escaper  *Escaper
	maxLimit int
	now      func() time.Time
}

// NewTranslator returns a Translator. A positive maxLimit caps the page size;
// zero passes the requested limit through unchanged. Negative limits and
// offsets are always raised to zero
func NewTranslator(escaper *Escaper, maxLimit int) *Translator {
	return &Translator{
		escaper:  escaper,
		maxLimit: maxLimit,
		now:      time.Now,
	}
}

func (t *Translator) Translate(cmd command.ListVideosCommand) *Query {
	refTime := cmd.RefTime
	if refTime == 0 {
		refTime = t.now().Unix()
	}

	channel := Truncate(cmd.Channel, ChannelMaxLength)
	q := &Query{
		Channel: channel,
		RefTime: refTime,
		Limit:   cmd.Limit,
		Offset:  cmd.Start,
		Window:  ComputeWindow(cmd.Epoch, cmd.TimeMode, refTime),
		escaper: t.escaper,
	}

	// SQLite reads a negative LIMIT as unlimited and a negative OFFSET as 0
	if q.Limit < 0 {
		q.Limit = 0
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if t.maxLimit > 0 && q.Limit > t.maxLimit {
		q.Limit = t.maxLimit
	}

	q.add("channel", "LIKE", channel, t.escaper.EscapeString(channel, ChannelMaxLength))
	q.addInt("duration", ">=", int64(cmd.Duration))

	switch {
	case q.Window.HasWindow:
		q.addInt("date_unix", ">", q.Window.To)
		q.addInt("date_unix", "<", q.Window.From)
	case q.Window.HasUpperBound:
		q.addInt("date_unix", "<=", q.Window.UpperBound)
	}

	return q
}

func (q *Query) add(column, op string, arg any, literal string) {
	q.conds = append(q.conds, condition{column: column, op: op, arg: arg, literal: literal})
}

func (q *Query) addInt(column, op string, v int64) {
	q.add(column, op, v, q.escaper.EscapeInt(v))
}

// Where returns the parameterized filter, or the literal one when literal is set
func (q *Query) Where(literal bool) string {
	parts := make([]string, 0, len(q.conds))
	for _, c := range q.conds {
		value := "?"
		if literal {
			value = c.literal
		}
		parts = append(parts, c.column+" "+c.op+" "+value)
	}
	return "WHERE (" + strings.Join(parts, " AND ") + ")"
}

func (q *Query) Args() []any {
	args := make([]any, 0, len(q.conds))
	for _, c := range q.conds {
		args = append(args, c.arg)
	}
	return args
}

func (q *Query) CountSQL() string {
	return q.countSQL(false)
}

func (q *Query) PageSQL() string {
	return q.pageSQL(false)
}

// PageArgs returns the filter arguments followed by limit and offset
func (q *Query) PageArgs() []any {
	return append(q.Args(), q.Limit, q.Offset)
}

// RenderCount returns the count statement with every value inlined as an
// escaped literal
func (q *Query) RenderCount() string {
	return q.countSQL(true)
}

func (q *Query) RenderPage() string {
	return q.pageSQL(true)
}

func (q *Query) countSQL(literal bool) string {
	return "SELECT COUNT(id) FROM " + VideoTable + " " + q.Where(literal) + ";"
}

func (q *Query) pageSQL(literal bool) string {
	limit, offset := "?", "?"
	if literal {
		limit = q.escaper.EscapeInt(int64(q.Limit))
		offset = q.escaper.EscapeInt(int64(q.Offset))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(VideoColumns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(VideoTable)
	sb.WriteString(" ")
	sb.WriteString(q.Where(literal))
	sb.WriteString(" ORDER BY date_unix DESC, title ASC")
	sb.WriteString(" LIMIT ")
	sb.WriteString(limit)
	sb.WriteString(" OFFSET ")
	sb.WriteString(offset)
	sb.WriteString(";")
	return sb.String()
}
