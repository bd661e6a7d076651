package dstring

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// Sprintf formats per fmt.Sprintf and returns the result as a String owned
// by this allocator.
func (a *Allocator) Sprintf(format string, args ...any) String {
	return a.NewStringFromBytes(fmt.Appendf(nil, format, args...))
}

// Sprintf formats per fmt.Sprintf on the Default allocator.
func Sprintf(format string, args ...any) String {
	return Default.Sprintf(format, args...)
}

// QuoteJSON returns a new String holding the payload as a JSON string value:
// surrounded by double quotes, with all JSON escaping applied.
func (s String) QuoteJSON() String {
	writer := jwriter.NewWriter()
	writer.String(s.String())
	return s.allocator().NewStringFromBytes(writer.Bytes())
}

// UnquoteJSON parses the payload as a single JSON string value and returns
// its unescaped content. Unlike the core operations, this is a parse
// boundary: input that is not a valid JSON string yields an error and the
// zero String.
func (s String) UnquoteJSON() (String, error) {
	reader := jreader.NewReader(s.Bytes())
	value := reader.String()
	if err := reader.Error(); err != nil {
		return String{}, cerrors.Wrap(err, "dstring: payload is not a JSON string")
	}
	return s.allocator().NewString(value), nil
}
