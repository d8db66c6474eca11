package style

import "github.com/previoip/srcds-resource-manager/internal/domain"

// Styler hands the package palette to code that takes a domain.Styler.
// The zero value is plain and never emits escape codes.
type Styler struct {
	themed bool
}

// Plain leaves every message as typed. Tests and piped output use it.
var Plain = Styler{}

// NewStyler returns a Styler that follows Init and the loaded theme.
func NewStyler() Styler {
	return Styler{themed: true}
}

func (s Styler) apply(paint func(string) string, text string) string {
	if !s.themed {
		return text
	}
	return paint(text)
}

func (s Styler) Enabled() bool { return s.themed && Enabled() }

func (s Styler) Success(text string) string { return s.apply(Success, text) }
func (s Styler) Warning(text string) string { return s.apply(Warning, text) }
func (s Styler) Error(text string) string   { return s.apply(Error, text) }
func (s Styler) Info(text string) string    { return s.apply(Info, text) }
func (s Styler) Muted(text string) string   { return s.apply(Muted, text) }
func (s Styler) Header(text string) string  { return s.apply(Header, text) }

var _ domain.Styler = Styler{}
