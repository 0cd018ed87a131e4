package element

// Align selects horizontal alignment for multi-line text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text is a timed text block. Shaping happens in the rasterizer; this type
// only carries the content and layout parameters.
type Text struct {
	Element

	text        string
	size        float64
	fontPath    string
	align       Align
	lineSpacing float64
}

// NewText creates a text element with the given content and point size.
func NewText(text string, size float64) *Text {
	t := &Text{Element: newElement(), text: text, size: size}
	return t
}

func (t *Text) Text() string         { return t.text }
func (t *Text) Size() float64        { return t.size }
func (t *Text) FontPath() string     { return t.fontPath }
func (t *Text) Alignment() Align     { return t.align }
func (t *Text) LineSpacing() float64 { return t.lineSpacing }

func (t *Text) SetText(s string) *Text         { t.text = s; return t }
func (t *Text) SetSize(size float64) *Text     { t.size = size; return t }
func (t *Text) SetFont(path string) *Text      { t.fontPath = path; return t }
func (t *Text) SetAlignment(a Align) *Text     { t.align = a; return t }
func (t *Text) SetLineSpacing(s float64) *Text { t.lineSpacing = s; return t }
