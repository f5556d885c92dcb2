package document

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Collection is the ordered, immutable set of documents loaded from the index.
// The zero value is an empty collection.
type Collection struct {
	docs []Document
}

// NewCollection builds a Collection from documents, preserving order.
func NewCollection(docs ...Document) Collection {
	c := make([]Document, len(docs))
	copy(c, docs)
	return Collection{docs: c}
}

// Len returns the number of documents.
func (c Collection) Len() int { return len(c.docs) }

// IsEmpty reports whether the collection holds no documents.
func (c Collection) IsEmpty() bool { return len(c.docs) == 0 }

// At returns the i-th document.
func (c Collection) At(i int) Document { return c.docs[i] }

// Documents returns a copy of the documents in index order.
func (c Collection) Documents() []Document {
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// All iterates documents in index order with their position.
func (c Collection) All() iter.Seq2[int, Document] {
	return func(yield func(int, Document) bool) {
		for i, d := range c.docs {
			if !yield(i, d) {
				return
			}
		}
	}
}

// dto is the wire shape of one entry in search.json.
// Missing text fields decode to "" and missing tags to nil.
type dto struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	URL     string   `json:"url"`
	Date    string   `json:"date"`
}

// Parse decodes a search.json payload (a JSON array of documents).
// Absent fields never fail the parse; a payload that is not an array of objects does.
func Parse(data []byte) (Collection, error) {
	var raw []*dto
	if err := json.Unmarshal(data, &raw); err != nil {
		return Collection{}, fmt.Errorf("decode index: %w", err)
	}

	docs := make([]Document, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			// null entry in the array
			continue
		}
		docs = append(docs, New(r.Title, r.Content, r.Tags, r.URL, r.Date))
	}
	return Collection{docs: docs}, nil
}

// MarshalJSON encodes the collection back to the search.json shape.
func (c Collection) MarshalJSON() ([]byte, error) {
	out := make([]dto, len(c.docs))
	for i, d := range c.docs {
		out[i] = dto{Title: d.title, Content: d.content, Tags: d.tags, URL: d.url, Date: d.date}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return data, nil
}
