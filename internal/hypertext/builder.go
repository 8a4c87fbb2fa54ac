// Package hypertext is a small server-side HTML builder with open/close tag
// semantics, plus the shared page shell every storefront page is wrapped in.
package hypertext

import (
	"html"
	"strings"
)

type Attr struct {
	Key   string
	Value string
}

func Class(v string) Attr   { return Attr{Key: "class", Value: v} }
func ID(v string) Attr      { return Attr{Key: "id", Value: v} }
func Style(v string) Attr   { return Attr{Key: "style", Value: v} }
func Href(v string) Attr    { return Attr{Key: "href", Value: v} }
func Src(v string) Attr     { return Attr{Key: "src", Value: v} }
func Title(v string) Attr   { return Attr{Key: "title", Value: v} }
func OnClick(v string) Attr { return Attr{Key: "onclick", Value: v} }

// Builder accumulates markup. Tags are not balanced automatically; callers
// pair Open and Close the way the page is structured.
type Builder struct {
	buf strings.Builder
}

func (b *Builder) Open(tag string, attrs ...Attr) *Builder {
	b.buf.WriteByte('<')
	b.buf.WriteString(tag)
	b.writeAttrs(attrs)
	b.buf.WriteByte('>')
	return b
}

func (b *Builder) Close(tag string) *Builder {
	b.buf.WriteString("</")
	b.buf.WriteString(tag)
	b.buf.WriteByte('>')
	return b
}

// Void writes a self-closing element such as <img> or <meta>.
func (b *Builder) Void(tag string, attrs ...Attr) *Builder {
	b.buf.WriteByte('<')
	b.buf.WriteString(tag)
	b.writeAttrs(attrs)
	b.buf.WriteString(" />")
	return b
}

// Text writes escaped text content.
func (b *Builder) Text(s string) *Builder {
	b.buf.WriteString(html.EscapeString(s))
	return b
}

// Raw writes markup verbatim. Only pass trusted, server-built fragments.
func (b *Builder) Raw(s string) *Builder {
	b.buf.WriteString(s)
	return b
}

func (b *Builder) Script(js string) *Builder {
	b.Open("script", Attr{Key: "type", Value: "text/javascript"})
	b.buf.WriteString(js)
	b.Close("script")
	return b
}

func (b *Builder) CSSLink(href string) *Builder {
	return b.Void("link", Attr{Key: "rel", Value: "stylesheet"}, Href(href))
}

func (b *Builder) JSLink(src string) *Builder {
	b.Open("script", Src(src))
	b.Close("script")
	return b
}

func (b *Builder) Meta(attrs ...Attr) *Builder {
	return b.Void("meta", attrs...)
}

func (b *Builder) Len() int {
	return b.buf.Len()
}

func (b *Builder) String() string {
	return b.buf.String()
}

func (b *Builder) writeAttrs(attrs []Attr) {
	for _, attr := range attrs {
		if attr.Value == "" {
			continue
		}
		b.buf.WriteByte(' ')
		b.buf.WriteString(attr.Key)
		b.buf.WriteString(`="`)
		b.buf.WriteString(html.EscapeString(attr.Value))
		b.buf.WriteByte('"')
	}
}
