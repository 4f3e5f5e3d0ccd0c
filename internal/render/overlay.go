package render

// Overlay is the idle/paused/dead card state. The engine drives it through
// the OverlayPresenter interface; the pipeline draws it on top of the board
// when visible.
type Overlay struct {
	visible bool
	title   string
	message string
	button  string
}

// NewOverlay returns a hidden overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Show makes the card visible with the given text.
func (o *Overlay) Show(title, message, button string) {
	o.visible = true
	o.title = title
	o.message = message
	o.button = button
}

// Hide makes the card invisible.
func (o *Overlay) Hide() {
	o.visible = false
}

// Visible reports whether the card is currently shown.
func (o *Overlay) Visible() bool {
	return o.visible
}
