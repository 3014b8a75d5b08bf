package formatter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kr/pretty"
)

func TestBuilder_Document(t *testing.T) {
	b := NewBuilder()
	b.StartArray().
		StartDict().
		Key("request_id").Value(1).
		Key("buses").StartArray().Value("14").Value("2").EndArray().
		EndDict().
		StartDict().
		Key("request_id").Value(2).
		Key("error_message").Value("not found").
		EndDict().
		EndArray()

	doc, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := Array{
		Dict{"request_id": 1, "buses": Array{"14", "2"}},
		Dict{"request_id": 2, "error_message": "not found"},
	}
	if diff := pretty.Diff(doc, want); len(diff) > 0 {
		t.Errorf("document mismatch:\n%v", diff)
	}
}

func TestBuilder_Leaf(t *testing.T) {
	doc, err := NewBuilder().Value("alone").Build()
	if err != nil || doc != "alone" {
		t.Errorf("expected a single leaf document, got %v, %v", doc, err)
	}
}

func TestBuilder_Misuse(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{name: "empty", build: func(b *Builder) {}},
		{name: "value without key", build: func(b *Builder) { b.StartDict().Value(1).EndDict() }},
		{name: "key outside dict", build: func(b *Builder) { b.StartArray().Key("k").EndArray() }},
		{name: "two keys", build: func(b *Builder) { b.StartDict().Key("a").Key("b") }},
		{name: "dangling key", build: func(b *Builder) { b.StartDict().Key("a").EndDict() }},
		{name: "wrong end", build: func(b *Builder) { b.StartDict().EndArray() }},
		{name: "unclosed", build: func(b *Builder) { b.StartArray().Value(1) }},
		{name: "second root", build: func(b *Builder) { b.Value(1).Value(2) }},
		{name: "end at top level", build: func(b *Builder) { b.EndDict() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			if _, err := b.Build(); !errors.Is(err, ErrBuilderState) {
				t.Errorf("expected ErrBuilderState, got %v", err)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	doc := Array{Dict{"request_id": 3, "map": `<svg a="1"/>`, "curvature": 1.5}}

	var compact bytes.Buffer
	if err := WriteJSON(&compact, doc, 0); err != nil {
		t.Fatal(err)
	}
	want := `[{"curvature":1.5,"map":"<svg a=\"1\"/>","request_id":3}]` + "\n"
	if compact.String() != want {
		t.Errorf("expected %s, got %s", want, compact.String())
	}

	var indented bytes.Buffer
	if err := WriteJSON(&indented, Dict{"a": Array{}}, 2); err != nil {
		t.Fatal(err)
	}
	want = "{\n  \"a\": []\n}\n"
	if indented.String() != want {
		t.Errorf("expected %q, got %q", want, indented.String())
	}
}
