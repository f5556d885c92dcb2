package document

import "strings"

// Document is one searchable page of the site (immutable value object).
type Document struct {
	title   string
	content string
	tags    []string
	url     string
	date    string
}

// New creates a Document. Tags are copied; nil tags become empty.
func New(title, content string, tags []string, url, date string) Document {
	return Document{
		title:   title,
		content: content,
		tags:    cloneTags(tags),
		url:     url,
		date:    date,
	}
}

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the plain-text content.
func (d *Document) Content() string { return d.content }

// Tags returns the tag labels in index order.
func (d *Document) Tags() []string { return d.tags }

// URL returns the destination link. It is not validated.
func (d *Document) URL() string { return d.url }

// Date returns the display date. It is opaque and never parsed.
func (d *Document) Date() string { return d.date }

// JoinedTags returns the tags joined with single spaces.
func (d *Document) JoinedTags() string { return strings.Join(d.tags, " ") }

func cloneTags(tags []string) []string {
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
