// Package filter decides whether free-text certificate fields contain
// inappropriate content. All checks are pure functions over immutable
// package-level vocabulary; the Checker wrapper adds logging and metrics for
// callers that want them.
package filter

import (
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "certledger_filter_rejections_total",
	Help: "Fields rejected by the content filter, by field name",
}, []string{"field"})

const rejectionMessage = "We're unable to create a certificate with the information provided. " +
	"Please ensure all names are appropriate and professional. " +
	"If you believe this is an error, please check your entries and try again."

// Normalize lowercases text, substitutes leet characters, and strips
// everything that is not a lowercase Latin letter. Empty input normalizes to
// the empty string. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if sub, ok := leetSubstitutions[r]; ok {
			r = sub
		}
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsBlockedContent reports whether text contains a blocked term and,
// if so, which one.
//
// Two passes, first match wins. The substring pass normalizes the whole
// input, so space removal lets it catch terms embedded in longer runs or
// formed across adjacent words. The per-word pass splits on whitespace and
// normalizes each word independently, catching exact blocked words. The
// passes are not equivalent when a term spans a space, so both are kept.
func ContainsBlockedContent(text string) (bool, string) {
	if text == "" {
		return false, ""
	}

	normalized := Normalize(text)
	for _, term := range blockedTerms {
		if strings.Contains(normalized, term) {
			return true, term
		}
	}

	for _, word := range strings.Fields(strings.ToLower(text)) {
		normalizedWord := Normalize(word)
		if _, ok := blockedTermSet[normalizedWord]; ok {
			return true, normalizedWord
		}
	}

	return false, ""
}

// Field is one named text input. Fields are passed as a slice because check
// order is part of the contract: the first offending field wins and later
// fields are not inspected.
type Field struct {
	Name  string
	Value string
}

// Result reports the outcome of a batch field check. FieldName and Term are
// empty when Clean is true.
type Result struct {
	Clean     bool
	FieldName string
	Term      string
}

// CheckFields checks fields in order and short-circuits on the first one
// containing blocked content.
func CheckFields(fields []Field) Result {
	for _, f := range fields {
		if matched, term := ContainsBlockedContent(f.Value); matched {
			return Result{FieldName: f.Name, Term: term}
		}
	}
	return Result{Clean: true}
}

// RejectionMessage returns the fixed user-safe message shown when content is
// rejected. It never echoes the offending term or field name.
func RejectionMessage() string {
	return rejectionMessage
}

// Checker wraps the pure checks with logging and rejection metrics.
type Checker struct {
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// CheckFields runs the batch check, counting and logging rejections. Only the
// field name is recorded; the rejected input stays out of logs and metrics.
func (c *Checker) CheckFields(fields []Field) Result {
	res := CheckFields(fields)
	if !res.Clean {
		rejectionsTotal.WithLabelValues(res.FieldName).Inc()
		c.logger.Info("certificate field rejected", "field", res.FieldName)
	}
	return res
}

// RejectionMessage returns the fixed user-safe rejection message.
func (c *Checker) RejectionMessage() string {
	return rejectionMessage
}
