package formatter

import (
	"errors"
	"fmt"
)

// ErrBuilderState is returned by Build when the calls did not describe a
// well-formed document, e.g. a value in a dict without a key.
var ErrBuilderState = errors.New("invalid builder state")

// Dict and Array are the container nodes of a built document. Leaves are
// strings, numbers, booleans or nil.
type (
	Dict  = map[string]any
	Array = []any
)

type frame struct {
	dict   Dict
	array  Array
	isDict bool
	key    string
	hasKey bool
}

// Builder constructs a document tree call by call:
//
//	b := formatter.NewBuilder()
//	b.StartDict().Key("request_id").Value(1).EndDict()
//	doc, err := b.Build()
//
// Nesting is checked as the calls arrive. The first misuse is kept and
// returned from Build; calls after it are ignored.
type Builder struct {
	stack   []*frame
	root    any
	hasRoot bool
	err     error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) fail(format string, args ...any) *Builder {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s", ErrBuilderState, fmt.Sprintf(format, args...))
	}
	return b
}

func (b *Builder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// checkPlace reports why a value could not be placed at the current position.
func (b *Builder) checkPlace() string {
	top := b.top()
	switch {
	case top == nil && b.hasRoot:
		return "document is already complete"
	case top != nil && top.isDict && !top.hasKey:
		return "dict value without a key"
	}
	return ""
}

func (b *Builder) place(v any) {
	top := b.top()
	switch {
	case top == nil:
		b.root, b.hasRoot = v, true
	case top.isDict:
		top.dict[top.key] = v
		top.hasKey = false
	default:
		top.array = append(top.array, v)
	}
}

// Key sets the key for the next value of the enclosing dict.
func (b *Builder) Key(key string) *Builder {
	if b.err != nil {
		return b
	}
	top := b.top()
	if top == nil || !top.isDict {
		return b.fail("key %q outside of a dict", key)
	}
	if top.hasKey {
		return b.fail("key %q follows key %q", key, top.key)
	}
	top.key, top.hasKey = key, true
	return b
}

// Value adds a leaf: after a key, as an array item, or as the whole document.
func (b *Builder) Value(v any) *Builder {
	if b.err != nil {
		return b
	}
	if reason := b.checkPlace(); reason != "" {
		return b.fail("value %v: %s", v, reason)
	}
	b.place(v)
	return b
}

func (b *Builder) StartDict() *Builder {
	return b.start(&frame{dict: Dict{}, isDict: true})
}

func (b *Builder) StartArray() *Builder {
	return b.start(&frame{array: Array{}})
}

func (b *Builder) start(f *frame) *Builder {
	if b.err != nil {
		return b
	}
	if reason := b.checkPlace(); reason != "" {
		return b.fail("container start: %s", reason)
	}
	b.stack = append(b.stack, f)
	return b
}

func (b *Builder) EndDict() *Builder {
	if b.err != nil {
		return b
	}
	top := b.top()
	if top == nil || !top.isDict {
		return b.fail("EndDict without an open dict")
	}
	if top.hasKey {
		return b.fail("key %q has no value", top.key)
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.place(top.dict)
	return b
}

func (b *Builder) EndArray() *Builder {
	if b.err != nil {
		return b
	}
	top := b.top()
	if top == nil || top.isDict {
		return b.fail("EndArray without an open array")
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.place(top.array)
	return b
}

// Build returns the finished document.
func (b *Builder) Build() (any, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) > 0 {
		return nil, fmt.Errorf("%w: %d containers left open", ErrBuilderState, len(b.stack))
	}
	if !b.hasRoot {
		return nil, fmt.Errorf("%w: empty document", ErrBuilderState)
	}
	return b.root, nil
}
