package logger

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

type recordedMessage struct {
	dest    string
	level   Level
	message string
}

type recorder struct {
	name   string
	out    *[]recordedMessage
	closed bool
}

func (r *recorder) DebugLog(m string) { *r.out = append(*r.out, recordedMessage{r.name, Debug, m}) }

func (r *recorder) InfoLog(m string) { *r.out = append(*r.out, recordedMessage{r.name, Info, m}) }

func (r *recorder) ErrorLog(m string) { *r.out = append(*r.out, recordedMessage{r.name, Error, m}) }

func (r *recorder) Close() { r.closed = true }

type panickingDestination struct{}

func (panickingDestination) DebugLog(string) { panic("debug") }

func (panickingDestination) InfoLog(string) { panic("info") }

func (panickingDestination) ErrorLog(string) { panic("error") }

func (panickingDestination) Close() { panic("close") }

func TestLevelAccepts(t *testing.T) {
	for _, threshold := range []Level{Debug, Info, Error, All} {
		for _, level := range []Level{Debug, Info, Error} {
			t.Run(threshold.String()+"_"+level.String(), func(t *testing.T) {
				require.Equal(t, level >= threshold || threshold == All, threshold.accepts(level))
			})
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, ca := range []struct {
		in  string
		out Level
	}{
		{"debug", Debug},
		{"Info", Info},
		{"ERROR", Error},
		{"all", All},
	} {
		t.Run(ca.in, func(t *testing.T) {
			l, err := ParseLevel(ca.in)
			require.NoError(t, err)
			require.Equal(t, ca.out, l)
		})
	}

	_, err := ParseLevel("bogus")
	require.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestLoggerFanOut(t *testing.T) {
	var out []recordedMessage
	a := &recorder{name: "a", out: &out}
	b := &recorder{name: "b", out: &out}
	c := &recorder{name: "c", out: &out}

	l := New(a, b, c)

	l.DebugLog("one")
	l.InfoLog("two")
	l.ErrorLog("three")

	require.Equal(t, []recordedMessage{
		{"a", Debug, "one"},
		{"b", Debug, "one"},
		{"c", Debug, "one"},
		{"a", Info, "two"},
		{"b", Info, "two"},
		{"c", Info, "two"},
		{"a", Error, "three"},
		{"b", Error, "three"},
		{"c", Error, "three"},
	}, out)

	l.Close()
	require.True(t, a.closed)
	require.True(t, b.closed)
	require.True(t, c.closed)
}

func TestLoggerFailingDestination(t *testing.T) {
	var out []recordedMessage
	last := &recorder{name: "last", out: &out}

	l := New(panickingDestination{}, last)

	require.NotPanics(t, func() {
		l.ErrorLog("msg")
		l.Close()
	})
	require.Equal(t, []recordedMessage{{"last", Error, "msg"}}, out)
	require.True(t, last.closed)
}

func TestLoggerDestinationsAreFixed(t *testing.T) {
	var out []recordedMessage
	dests := []Destination{&recorder{name: "a", out: &out}}

	l := New(dests...)
	dests[0] = &recorder{name: "b", out: &out}

	l.InfoLog("msg")
	require.Equal(t, []recordedMessage{{"a", Info, "msg"}}, out)
}

func TestLoggerLog(t *testing.T) {
	var out []recordedMessage
	l := New(&recorder{name: "a", out: &out})

	l.Log(Debug, "test format %d", 1)
	l.Log(Info, "test format %d", 2)
	l.Log(Error, "test format %d", 3)
	l.Log(All, "ignored")

	require.Equal(t, []recordedMessage{
		{"a", Debug, "test format 1"},
		{"a", Info, "test format 2"},
		{"a", Error, "test format 3"},
	}, out)
}

func TestFormatMessage(t *testing.T) {
	require.Equal(t, "value 12 abc", formatMessage("value %d %s", []any{12, "abc"}))
	require.Equal(t, "value %!d(MISSING)", formatMessage("value %d", nil))

	msg := formatMessage("%s", []any{strings.Repeat("a", MaxLength*2)})
	require.Len(t, msg, MaxLength)

	msg = formatMessage("a%s", []any{strings.Repeat("é", MaxLength)})
	require.LessOrEqual(t, len(msg), MaxLength)
	require.True(t, utf8.ValidString(msg))
}
