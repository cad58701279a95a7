package card

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"membership_system/internal/domain"
)

// ErrTemplateMissing is returned when the background template asset is not
// on local storage.
var ErrTemplateMissing = errors.New("card template not found")

const (
	// DefaultTemplate is the background image the card is composed onto.
	DefaultTemplate = "template_kartu.png"
	// DefaultFont is the preferred typeface asset.
	DefaultFont = "roboto.ttf"

	fontPoints = 70
	textColor  = "#1A0B2E"
)

// point is a fixed pixel coordinate on the template, matching the text slots
// printed on the card artwork.
type point struct{ x, y float64 }

var positions = struct {
	nama, username, email, password, wa, link point
}{
	nama:     point{700, 430},
	username: point{700, 610},
	email:    point{700, 790},
	password: point{700, 970},
	wa:       point{700, 1150},
	link:     point{700, 1330},
}

// Generator renders membership cards from a template and font on local
// storage. It holds no mutable state; Generate is pure apart from the two
// asset reads.
type Generator struct {
	TemplatePath string
	FontPath     string
}

func NewGenerator(template, font string) *Generator {
	return &Generator{TemplatePath: template, FontPath: font}
}

// Generate composites the member's fields onto the template and returns the
// encoded PNG. A missing font degrades to the built-in face; a missing
// template is a hard failure.
func (g *Generator) Generate(m domain.Member) ([]byte, error) {
	if _, err := os.Stat(g.TemplatePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, g.TemplatePath)
	}

	img, err := gg.LoadPNG(g.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("decode card template: %w", err)
	}

	dc := gg.NewContextForImage(img)
	if err := dc.LoadFontFace(g.FontPath, fontPoints); err != nil {
		dc.SetFontFace(basicfont.Face7x13)
	}
	dc.SetHexColor(textColor)

	// Anchor each string by its top-left corner at the template's slot.
	draw := func(s string, p point) {
		dc.DrawStringAnchored(s, p.x, p.y, 0, 1)
	}
	draw(m.Nama, positions.nama)
	draw(m.Username, positions.username)
	draw(m.Email, positions.email)
	draw(m.Password, positions.password)
	draw(m.NoWA, positions.wa)
	draw(m.Link, positions.link)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode card PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for a member's card.
func Filename(username string) string {
	return fmt.Sprintf("Kartu_%s.PNG", username)
}
