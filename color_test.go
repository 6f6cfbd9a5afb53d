package vtcore

import "testing"

func TestColorEqual(t *testing.T) {
	if !Indexed(5).Equal(Indexed(5)) {
		t.Errorf("Indexed(5) should equal Indexed(5)")
	}
	if Indexed(5).Equal(Indexed(6)) {
		t.Errorf("Indexed(5) should not equal Indexed(6)")
	}
	if !RGB(1, 2, 3).Equal(RGB(1, 2, 3)) {
		t.Errorf("RGB(1,2,3) should equal RGB(1,2,3)")
	}
	if DefaultColor.Equal(Indexed(0)) {
		t.Errorf("DefaultColor should not equal Indexed(0): they are different tags")
	}
	if !DefaultColor.Equal(Color{}) {
		t.Errorf("DefaultColor should equal the Color zero value")
	}
}

func TestResolveRGBIndexedUsesPalette(t *testing.T) {
	got := ResolveRGB(Indexed(1), [3]uint8{9, 9, 9})
	want := palette[1]
	if got != want {
		t.Errorf("ResolveRGB(Indexed(1)) = %v, want %v", got, want)
	}
}

func TestResolveRGBDefaultUsesFallback(t *testing.T) {
	def := [3]uint8{10, 20, 30}
	if got := ResolveRGB(DefaultColor, def); got != def {
		t.Errorf("ResolveRGB(DefaultColor) = %v, want fallback %v", got, def)
	}
}

func TestResolveRGBTruecolorPassesThrough(t *testing.T) {
	c := RGB(1, 2, 3)
	if got := ResolveRGB(c, [3]uint8{}); got != [3]uint8{1, 2, 3} {
		t.Errorf("ResolveRGB(RGB) = %v, want (1,2,3)", got)
	}
}

func TestPaletteColorCubeEndpoints(t *testing.T) {
	if got := palette[16]; got != [3]uint8{0, 0, 0} {
		t.Errorf("palette[16] = %v, want black (cube origin)", got)
	}
	if got := palette[231]; got != [3]uint8{255, 255, 255} {
		t.Errorf("palette[231] = %v, want white (cube far corner)", got)
	}
}

func TestPaletteGrayscaleRamp(t *testing.T) {
	if got := palette[232]; got != [3]uint8{8, 8, 8} {
		t.Errorf("palette[232] = %v, want (8,8,8)", got)
	}
	if got := palette[255]; got != [3]uint8{238, 238, 238} {
		t.Errorf("palette[255] = %v, want (238,238,238)", got)
	}
}
