package update

// Op names which single flag a reactive-variable or event subscription
// should raise on its owning widget when the source changes, so
// SubVar/SubVarOp (package widget) take one of these rather than every
// subscription hard-coding UPDATE.
type Op uint8

const (
	OpUpdate Op = iota
	OpInfo
	OpLayout
	OpRender
	OpRenderUpdate
)

// Flag returns the single Flags bit this Op corresponds to.
func (o Op) Flag() Flags {
	switch o {
	case OpInfo:
		return INFO
	case OpLayout:
		return LAYOUT
	case OpRender:
		return RENDER
	case OpRenderUpdate:
		return RENDER_UPDATE
	default:
		return UPDATE
	}
}
