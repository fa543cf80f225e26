// Package format holds helpers for Telegram's HTML parse mode.
package format

import (
	"strings"
	"time"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape makes s safe to embed in an HTML-mode message.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Bold wraps the escaped text in <b>.
func Bold(s string) string {
	return "<b>" + Escape(s) + "</b>"
}

// Italic wraps the escaped text in <i>.
func Italic(s string) string {
	return "<i>" + Escape(s) + "</i>"
}

// Code wraps the escaped text in <code>.
func Code(s string) string {
	return "<code>" + Escape(s) + "</code>"
}

// OrDefault returns def when s is blank.
func OrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// DateTime renders t as "dd.mm.yyyy hh:mm" in loc (UTC when nil).
func DateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006 15:04")
}

// Date renders t as "dd.mm.yyyy" in loc (UTC when nil).
func Date(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006")
}
