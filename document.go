package hookbind

import (
	"bytes"
	"regexp"
)

// <template> or <template lang="html">
var docTemplateOpen = regexp.MustCompile(`<template(?:\s[^>]*)?>`)

var docTemplateClose = []byte("</template>")

// Document is the source of a single-file component
type Document []byte

// TemplateRegion returns the span from the first <template> open tag through
// the end of the last </template>.
func (d Document) TemplateRegion() (start, end int, err error) {
	loc := docTemplateOpen.FindIndex(d)
	if loc == nil {
		return 0, 0, ErrTemplateNotFound
	}

	closeAt := bytes.LastIndex(d, docTemplateClose)
	if closeAt < loc[1] {
		return 0, 0, ErrTemplateNotFound
	}

	return loc[0], closeAt + len(docTemplateClose), nil
}

// Template returns the template region, or nil when there is none
func (d Document) Template() []byte {
	start, end, err := d.TemplateRegion()
	if err != nil {
		return nil
	}

	return d[start:end]
}

// Splice replaces d[start:end] with data
func (d *Document) Splice(start, end int, data []byte) {
	retv := make(Document, 0, len(*d)-(end-start)+len(data))
	retv = append(retv, (*d)[:start]...)
	retv = append(retv, data...)
	retv = append(retv, (*d)[end:]...)
	*d = retv
}
