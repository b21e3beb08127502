package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html"
	"regexp"
	"strconv"
	"strings"

	"dbconnmanager/models"
	"dbconnmanager/pkg/logger"
	"dbconnmanager/pkg/metrics"
	"dbconnmanager/repository"
	"dbconnmanager/services/credential"
	"dbconnmanager/services/dbclient"
	"dbconnmanager/services/shortcode"

	"github.com/dolthub/vitess/go/vt/sqlparser"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/gorm"
)

// DirectiveTag is the shortcode name handled by the query runner.
const DirectiveTag = "external_db_query"

// Fixed query runner messages.
const (
	MsgInvalidDirectiveID = "Invalid DB Connection ID."
	MsgNotAvailable       = "The requested connection is not available."
	MsgNoQuery            = "No query provided."
	MsgSelectOnly         = "Only SELECT queries are allowed."
	MsgMySQLConnectFailed = "Failed to connect to MySQL database."
	MsgQueryFailed        = "Query failed to execute."
	MsgNoCollection       = "No collection provided."
)

// Output templates for MySQL results.
const (
	TemplateTable = "table"
	TemplateJSON  = "json"
)

// DefaultQueryLimit applies when a directive carries no limit attribute.
const DefaultQueryLimit = 20

var (
	selectPattern = regexp.MustCompile(`(?i)^\s*SELECT`)
	limitPattern  = regexp.MustCompile(`(?i)\bLIMIT\b`)
)

// Directive holds the attributes of one embedded query.
type Directive struct {
	ID         uint
	Query      string
	Collection string
	Filter     string
	Projection string
	Limit      int
	Template   string
	Content    string // enclosed body, used as the query when Query is empty
}

// NewDirective builds a Directive from raw attribute text. Missing attributes
// take their defaults; id and limit are read as absolute integers.
func NewDirective(attrs map[string]string, content string, defaultLimit int) Directive {
	d := Directive{
		Query:      attrs["query"],
		Collection: attrs["collection"],
		Filter:     "{}",
		Projection: "{}",
		Limit:      defaultLimit,
		Template:   TemplateTable,
		Content:    content,
	}
	if v, ok := attrs["id"]; ok {
		d.ID = uint(AbsInt(v))
	}
	if v, ok := attrs["filter"]; ok {
		d.Filter = v
	}
	if v, ok := attrs["projection"]; ok {
		d.Projection = v
	}
	if v, ok := attrs["limit"]; ok {
		d.Limit = AbsInt(v)
	}
	if v, ok := attrs["template"]; ok {
		d.Template = v
	}
	return d
}

// AbsInt reads the leading integer of s and returns its absolute value; anything unparsable is 0.
func AbsInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	if n < 0 {
		return -n
	}
	return n
}

// QueryService renders embedded read-only queries against stored connections.
type QueryService interface {
	// Render runs one directive and returns an HTML fragment. It never fails;
	// problems are reported as an escaped fixed message.
	Render(ctx context.Context, d Directive) string
	// RenderContent expands every directive found in page content.
	RenderContent(ctx context.Context, content string) string
}

type queryService struct {
	repo         repository.DBConnectionRepository
	mysql        dbclient.MySQLClient
	mongo        dbclient.MongoClient
	defaultLimit int
}

// NewQueryService creates a new query service instance
func NewQueryService(mysqlClient dbclient.MySQLClient, mongoClient dbclient.MongoClient, defaultLimit int) QueryService {
	return NewQueryServiceWithDeps(repository.NewDBConnectionRepository(), mysqlClient, mongoClient, defaultLimit)
}

// NewQueryServiceWithDeps creates a query service on explicit dependencies.
func NewQueryServiceWithDeps(repo repository.DBConnectionRepository, mysqlClient dbclient.MySQLClient, mongoClient dbclient.MongoClient, defaultLimit int) QueryService {
	if defaultLimit < 0 {
		defaultLimit = DefaultQueryLimit
	}
	return &queryService{
		repo:         repo,
		mysql:        mysqlClient,
		mongo:        mongoClient,
		defaultLimit: defaultLimit,
	}
}

func (s *queryService) RenderContent(ctx context.Context, content string) string {
	return shortcode.Expand(content, DirectiveTag, func(sc shortcode.Shortcode) string {
		return s.Render(ctx, NewDirective(sc.Attrs, sc.Content, s.defaultLimit))
	})
}

func (s *queryService) Render(ctx context.Context, d Directive) string {
	if d.ID == 0 {
		metrics.ObserveQueryRender("unknown", "invalid_id")
		return escaped(MsgInvalidDirectiveID)
	}
	rec, err := s.repo.GetByID(nil, d.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Errorf("Failed to load connection id=%d for query: %v", d.ID, err)
		}
		metrics.ObserveQueryRender("unknown", "invalid_id")
		return escaped(MsgInvalidDirectiveID)
	}
	if !rec.IsPublished() {
		metrics.ObserveQueryRender(rec.DBType, "not_available")
		return escaped(MsgNotAvailable)
	}

	creds := credential.FromRecord(rec)
	switch rec.DBType {
	case models.DBTypeMySQL:
		return s.renderMySQL(ctx, rec.ID, creds, d)
	case models.DBTypeMongoDB:
		return s.renderMongo(ctx, rec.ID, creds, d)
	default:
		metrics.ObserveQueryRender(rec.DBType, "unsupported")
		return escaped(MsgUnsupportedDBType)
	}
}

// PrepareSelect applies the read-only guard and the row limit to query.
// It returns the statement to execute, or a *credential.UserError.
func PrepareSelect(query string, limit int) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", &credential.UserError{Message: MsgNoQuery}
	}
	if !selectPattern.MatchString(query) {
		return "", &credential.UserError{Message: MsgSelectOnly}
	}
	if n, err := countStatements(query); err != nil || n != 1 {
		return "", &credential.UserError{Message: MsgSelectOnly}
	}
	if limit > 0 && !limitPattern.MatchString(query) {
		query = strings.TrimRight(query, ";") + " LIMIT " + strconv.Itoa(limit)
	}
	return query, nil
}

// countStatements reports how many non-empty statements query holds. Semicolons
// inside quoted strings, identifiers and comments do not split statements.
func countStatements(query string) (int, error) {
	pieces, err := sqlparser.SplitStatementToPieces(query)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, piece := range pieces {
		if strings.TrimSpace(piece) != "" {
			n++
		}
	}
	return n, nil
}

func (s *queryService) renderMySQL(ctx context.Context, id uint, creds credential.Credentials, d Directive) string {
	query := d.Query
	if strings.TrimSpace(query) == "" {
		query = d.Content
	}
	statement, err := PrepareSelect(query, d.Limit)
	if err != nil {
		metrics.ObserveQueryRender(models.DBTypeMySQL, "rejected")
		return escaped(err.Error())
	}

	rs, err := s.mysql.Query(ctx, creds, statement)
	if err != nil {
		logger.Warnf("Embedded query on connection id=%d failed: %v", id, err)
		if errors.Is(err, dbclient.ErrConnect) {
			metrics.ObserveQueryRender(models.DBTypeMySQL, "connect_error")
			return escaped(MsgMySQLConnectFailed)
		}
		metrics.ObserveQueryRender(models.DBTypeMySQL, "query_error")
		return escaped(MsgQueryFailed)
	}
	metrics.ObserveQueryRender(models.DBTypeMySQL, "ok")

	if normalizeTemplate(d.Template) == TemplateJSON {
		return preBlock(rowsJSON(rs))
	}
	return renderTable(rs)
}

func (s *queryService) renderMongo(ctx context.Context, id uint, creds credential.Credentials, d Directive) string {
	if !s.mongo.Available() {
		metrics.ObserveQueryRender(models.DBTypeMongoDB, "unavailable")
		return escaped(MsgMongoNotConfigured)
	}
	collection := strings.TrimSpace(d.Collection)
	if collection == "" {
		metrics.ObserveQueryRender(models.DBTypeMongoDB, "rejected")
		return escaped(MsgNoCollection)
	}
	filter, err := credential.DecodeJSONArgument(d.Filter)
	if err != nil {
		metrics.ObserveQueryRender(models.DBTypeMongoDB, "rejected")
		return escaped(err.Error())
	}
	projection, err := credential.DecodeJSONArgument(d.Projection)
	if err != nil {
		metrics.ObserveQueryRender(models.DBTypeMongoDB, "rejected")
		return escaped(err.Error())
	}

	docs, err := s.mongo.Find(ctx, creds, dbclient.FindRequest{
		Collection: collection,
		Filter:     filter,
		Projection: projection,
		Limit:      int64(d.Limit),
	})
	if err != nil {
		logger.Warnf("Embedded find on connection id=%d failed: %v", id, err)
		metrics.ObserveQueryRender(models.DBTypeMongoDB, "query_error")
		return escaped(err.Error())
	}
	metrics.ObserveQueryRender(models.DBTypeMongoDB, "ok")
	return preBlock(documentsJSON(docs))
}

func normalizeTemplate(t string) string {
	if strings.ToLower(strings.TrimSpace(t)) == TemplateJSON {
		return TemplateJSON
	}
	return TemplateTable
}

func escaped(msg string) string {
	return html.EscapeString(msg)
}

func preBlock(body string) string {
	return `<pre class="db-connection-pre">` + html.EscapeString(body) + `</pre>`
}

func renderTable(rs *dbclient.ResultSet) string {
	var b strings.Builder
	b.WriteString(`<table class="db-connection-table"><thead><tr>`)
	for _, col := range rs.Columns {
		b.WriteString("<th>" + html.EscapeString(col) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range rs.Rows {
		b.WriteString("<tr>")
		for _, v := range row {
			b.WriteString("<td>" + html.EscapeString(cellText(v)) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		raw, err := marshalJSON(val)
		if err != nil {
			return ""
		}
		return strings.Trim(string(raw), `"`)
	}
}

// rowsJSON renders rows as a pretty-printed array of objects keeping column order.
func rowsJSON(rs *dbclient.ResultSet) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rs.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range rs.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, _ := marshalJSON(col)
			buf.Write(key)
			buf.WriteByte(':')
			var v any
			if j < len(row) {
				v = row[j]
			}
			val, err := marshalJSON(v)
			if err != nil {
				val = []byte("null")
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return indentJSON(buf.Bytes())
}

// documentsJSON renders documents as relaxed extended JSON in a pretty-printed array.
func documentsJSON(docs []bson.Raw) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, doc := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			logger.Warnf("Skipping document that cannot be rendered as JSON: %v", err)
			raw = []byte("{}")
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	return indentJSON(buf.Bytes())
}

func indentJSON(compact []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return string(compact)
	}
	return out.String()
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
