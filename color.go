package vtcore

// ColorKind discriminates the Color tagged union.
type ColorKind uint8

const (
	// ColorDefault is the terminal's default fg/bg, tracked separately
	// from the 256-color palette so SGR 39/49 can restore it exactly.
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is a tagged variant: Default | Indexed(0..=255) | Rgb(r,g,b).
// The zero value is ColorDefault, so a zero-valued Cell renders with
// the terminal's default colors without further initialization.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// DefaultColor is the Color zero value, kept as a name for readability
// at call sites (SGR 39/49, cell reset, template defaults).
var DefaultColor = Color{Kind: ColorDefault}

// Indexed builds a 256-color-palette Color.
func Indexed(i uint8) Color {
	return Color{Kind: ColorIndexed, Index: i}
}

// RGB builds a 24-bit truecolor Color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Equal reports whether two colors are the tagged-union-equal.
func (c Color) Equal(o Color) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ColorIndexed:
		return c.Index == o.Index
	case ColorRGB:
		return c.R == o.R && c.G == o.G && c.B == o.B
	default:
		return true
	}
}

// palette is the standard 256-color table: 16 named ANSI colors
// (0-7 normal, 8-15 bright), a 6x6x6 color cube (16-231), and a
// 24-step grayscale ramp (232-255). Used only to resolve Indexed
// colors for snapshot/render consumers that want RGB triples;
// the Cell itself always keeps the tagged Index, never a resolved RGB.
var palette = [256][3]uint8{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				var rv, gv, bv uint8
				if r > 0 {
					rv = uint8(r*40 + 55)
				}
				if g > 0 {
					gv = uint8(g*40 + 55)
				}
				if b > 0 {
					bv = uint8(b*40 + 55)
				}
				palette[i] = [3]uint8{rv, gv, bv}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		palette[232+j] = [3]uint8{gray, gray, gray}
	}
}

// ResolveRGB returns an RGB triple for any Color, using def as the
// fallback for ColorDefault.
func ResolveRGB(c Color, def [3]uint8) [3]uint8 {
	switch c.Kind {
	case ColorIndexed:
		return palette[c.Index]
	case ColorRGB:
		return [3]uint8{c.R, c.G, c.B}
	default:
		return def
	}
}
