// Package teamcity renders TeamCity service messages.
//
// A service message is a single build-log line of the form
//
//	##teamcity[messageName key1='value1' key2='value2']
//
// Values must be escaped with Escape before they are placed between quotes.
package teamcity

import (
	"strconv"
	"strings"
)

const prefix = "##teamcity["

// escaper runs a single pass over its input, so an emitted "|" is never
// escaped a second time.
var escaper = strings.NewReplacer(
	"|", "||",
	"'", "|'",
	"\n", "|n",
	"\r", "|r",
	"\u0085", "|x", // next line
	"\u2028", "|l", // line separator
	"\u2029", "|p", // paragraph separator
	"[", "|[",
	"]", "|]",
)

// LineSeparator joins already-escaped entries inside one attribute value.
const LineSeparator = "|n"

// Escape makes s safe to embed inside a service message attribute.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}

// Attr is a single key='value' pair of a service message.
type Attr struct {
	Key   string
	Value string

	escaped bool
}

// String returns an attribute whose value is escaped on render.
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Int returns a numeric attribute.
func Int(key string, value int) Attr {
	return Attr{Key: key, Value: strconv.Itoa(value), escaped: true}
}

// Escaped returns an attribute whose value the caller has already escaped.
func Escaped(key, value string) Attr {
	return Attr{Key: key, Value: value, escaped: true}
}

func (a Attr) render() string {
	v := a.Value
	if !a.escaped {
		v = Escape(v)
	}
	return a.Key + "='" + v + "'"
}

// Message is one service message.
type Message struct {
	Name  string
	Attrs []Attr
}

// New builds a message.
func New(name string, attrs ...Attr) Message {
	return Message{Name: name, Attrs: attrs}
}

func (m Message) String() string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(m.Name)
	for _, a := range m.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.render())
	}
	b.WriteByte(']')
	return b.String()
}

// BuildStatistic reports a numeric build statistic value.
func BuildStatistic(key string, value int) Message {
	return New("buildStatisticValue", String("key", key), Int("value", value))
}
