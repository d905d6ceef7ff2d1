package itc

import (
	"strconv"
	"strings"
)

// String renders the ID in its ASCII form: "0" for a null leaf, "1" for
// a seed leaf, "(l, r)" for an internal node.
func (i *ID) String() string {
	if i == nil {
		return "<nil>"
	}
	var b strings.Builder
	writeIDString(&b, i)
	return b.String()
}

func writeIDString(b *strings.Builder, i *ID) {
	switch {
	case i.IsNull():
		b.WriteByte('0')
	case i.IsSeed():
		b.WriteByte('1')
	default:
		b.WriteByte('(')
		writeIDString(b, i.left)
		b.WriteString(", ")
		writeIDString(b, i.right)
		b.WriteByte(')')
	}
}

// String renders the Event in its ASCII form: "n" for a leaf,
// "(n, l, r)" for an internal node.
func (e *Event) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	writeEventString(&b, e)
	return b.String()
}

func writeEventString(b *strings.Builder, e *Event) {
	if e.IsLeaf() {
		b.WriteString(strconv.FormatUint(uint64(e.count), 10))
		return
	}
	b.WriteByte('(')
	b.WriteString(strconv.FormatUint(uint64(e.count), 10))
	b.WriteString(", ")
	writeEventString(b, e.left)
	b.WriteString(", ")
	writeEventString(b, e.right)
	b.WriteByte(')')
}

// String renders the Stamp as "{id; event}".
func (s *Stamp) String() string {
	if s == nil {
		return "<nil>"
	}
	return "{" + s.id.String() + "; " + s.event.String() + "}"
}
