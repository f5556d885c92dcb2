package document

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_CopiesTags(t *testing.T) {
	tags := []string{"go", "search"}
	doc := New("Title", "body", tags, "/p1", "2024-01-01")
	tags[0] = "mutated"

	if doc.Tags()[0] != "go" {
		t.Errorf("Tags()[0] = %q, want %q", doc.Tags()[0], "go")
	}
}

func TestNew_NilTags(t *testing.T) {
	doc := New("Title", "", nil, "/p1", "2024-01-01")
	if doc.Tags() == nil || len(doc.Tags()) != 0 {
		t.Errorf("Tags() = %#v, want empty non-nil slice", doc.Tags())
	}
	if doc.JoinedTags() != "" {
		t.Errorf("JoinedTags() = %q, want empty", doc.JoinedTags())
	}
}

func TestJoinedTags(t *testing.T) {
	doc := New("T", "", []string{"Cache", "Systems"}, "/", "")
	if got := doc.JoinedTags(); got != "Cache Systems" {
		t.Errorf("JoinedTags() = %q", got)
	}
}

func TestParse_Valid(t *testing.T) {
	data := []byte(`[
		{"title":"Intro to Caching","content":"A cache stores...","tags":["cache","systems"],"url":"/p1","date":"2024-01-01"},
		{"title":"Second","content":"","url":"/p2","date":"2024-02-01"}
	]`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	first := c.At(0)
	if first.Title() != "Intro to Caching" || first.URL() != "/p1" || first.Date() != "2024-01-01" {
		t.Errorf("first document = %+v", first)
	}
	if len(first.Tags()) != 2 {
		t.Errorf("first tags = %v", first.Tags())
	}

	second := c.At(1)
	if len(second.Tags()) != 0 {
		t.Errorf("absent tags should decode as empty, got %v", second.Tags())
	}
}

func TestParse_MissingFieldsAreEmpty(t *testing.T) {
	c, err := Parse([]byte(`[{"url":"/only-url"}, null, {"title":"T","tags":null}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	d := c.At(0)
	if d.Title() != "" || d.Content() != "" || d.Date() != "" {
		t.Errorf("missing fields should be empty, got %+v", d)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "<html>"},
		{"object instead of array", `{"title":"x"}`},
		{"array of strings", `["a","b"]`},
		{"truncated", `[{"title":"x"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !c.IsEmpty() {
				t.Errorf("collection should be empty on error, got %d", c.Len())
			}
		})
	}
}

func TestCollection_ZeroValue(t *testing.T) {
	var c Collection
	if !c.IsEmpty() || c.Len() != 0 {
		t.Error("zero collection should be empty")
	}
	for range c.All() {
		t.Fatal("zero collection should not yield")
	}
}

func TestCollection_DocumentsIsCopy(t *testing.T) {
	c := NewCollection(New("a", "", nil, "/a", ""), New("b", "", nil, "/b", ""))
	docs := c.Documents()
	docs[0] = New("changed", "", nil, "/x", "")

	if first := c.At(0); first.Title() != "a" {
		t.Errorf("collection mutated through Documents(): %q", first.Title())
	}
}

func TestCollection_AllPreservesOrder(t *testing.T) {
	c := NewCollection(New("a", "", nil, "/a", ""), New("b", "", nil, "/b", ""), New("c", "", nil, "/c", ""))

	var titles []string
	for i, d := range c.All() {
		if at := c.At(i); at.Title() != d.Title() {
			t.Errorf("index %d mismatch", i)
		}
		titles = append(titles, d.Title())
	}
	if strings.Join(titles, ",") != "a,b,c" {
		t.Errorf("order = %v", titles)
	}
}

func TestCollection_MarshalJSON(t *testing.T) {
	c := NewCollection(New("Intro", "text", []string{"go"}, "/p1", "2024-01-01"))

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	d := back.At(0)
	if d.Title() != "Intro" || d.Content() != "text" || d.URL() != "/p1" || d.Tags()[0] != "go" {
		t.Errorf("unexpected document after re-parse: %+v", d)
	}
}
