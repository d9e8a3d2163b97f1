package event

import "image"

// Pointer is a position-carrying event (mouse/touch move, down, up, click).
// It is routed by hit-testing, as
// position-bearing events.
type Pointer struct {
	Base
	Pos image.Point
}

func (p *Pointer) HasPos() bool { return true }

// NewPointer builds a Pointer event of the given kind at pos.
func NewPointer(typ Types, pos image.Point) *Pointer {
	return &Pointer{Base: Base{Typ: typ}, Pos: pos}
}

// Key is a keyboard event, routed to the currently focused widget.
type Key struct {
	Base
	Rune rune
	Code uint32
}

func (k *Key) NeedsFocus() bool { return true }

// NewKey builds a Key event of the given kind.
func NewKey(typ Types, rn rune, code uint32) *Key {
	return &Key{Base: Base{Typ: typ}, Rune: rn, Code: code}
}
