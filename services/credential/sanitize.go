// Package credential coerces submitted connection parameters into their
// constrained domains and validates the JSON fields that accompany them.
package credential

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"dbconnmanager/models"

	"github.com/spf13/cast"
)

// Credentials is the sanitized, storable subset of a connection record.
type Credentials struct {
	DBType   string `json:"db_type"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
	Options  string `json:"options"`
}

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	spaceRunPattern = regexp.MustCompile(`\s+`)
)

// Sanitize coerces an arbitrary input map into Credentials. Unknown keys are
// ignored and values that cannot be coerced become empty strings, so it never fails.
func Sanitize(input map[string]any) Credentials {
	return Credentials{
		DBType:   sanitizeDBType(scalarString(input, "db_type")),
		Host:     SanitizeTextField(scalarString(input, "host")),
		Port:     digitsOnly(scalarString(input, "port")),
		Username: SanitizeTextField(scalarString(input, "username")),
		Password: scalarString(input, "password"),
		Database: SanitizeTextField(scalarString(input, "database")),
		Options:  scalarString(input, "options"),
	}
}

// FromRecord extracts the credential fields of a stored record.
func FromRecord(rec *models.DBConnection) Credentials {
	return Credentials{
		DBType:   rec.DBType,
		Host:     rec.Host,
		Port:     rec.Port,
		Username: rec.Username,
		Password: rec.Password,
		Database: rec.Database,
		Options:  rec.Options,
	}
}

// Apply copies the credential fields onto a record, leaving status fields untouched.
func (c Credentials) Apply(rec *models.DBConnection) {
	rec.DBType = c.DBType
	rec.Host = c.Host
	rec.Port = c.Port
	rec.Username = c.Username
	rec.Password = c.Password
	rec.Database = c.Database
	rec.Options = c.Options
}

// SanitizeTextField strips invalid UTF-8, markup and control characters from
// single-line text, collapses whitespace runs and trims the result.
func SanitizeTextField(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r), r == utf8.RuneError:
			return -1
		}
		return r
	}, s)
	s = spaceRunPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func sanitizeDBType(s string) string {
	switch s {
	case models.DBTypeMySQL, models.DBTypeMongoDB:
		return s
	}
	return models.DBTypeMySQL
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// scalarString returns the string form of input[key]; maps, slices and
// other composite values yield "".
func scalarString(input map[string]any, key string) string {
	v, ok := input[key]
	if !ok || v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any, map[string]string, []string:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}
