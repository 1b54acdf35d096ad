package styles

import (
	"image/color"
	"testing"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/scene"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#5470c6", color.RGBA{0x54, 0x70, 0xc6, 0xff}, false},
		{"fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v", tt.in, err)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidStyle) {
					t.Errorf("error code = %s", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{0x54, 0x70, 0xc6, 0xff}); got != "#5470c6" {
		t.Errorf("Hex() = %s", got)
	}
}

func TestSimpleFill(t *testing.T) {
	s, err := NewSimple([]string{"#000000", "#ff0000"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		cell scene.Cell
		want color.RGBA
	}{
		{"palette", scene.Cell{ColorIndex: 1, Depth: 1}, color.RGBA{0xff, 0, 0, 0xff}},
		{"wraps", scene.Cell{ColorIndex: 2, Depth: 1}, color.RGBA{0, 0, 0, 0xff}},
		{"lighter with depth", scene.Cell{ColorIndex: 0, Depth: 2}, Lighten(color.RGBA{0, 0, 0, 0xff}, 0.12)},
		{"override", scene.Cell{ColorIndex: 0, Depth: 1, Color: "#00ff00"}, color.RGBA{0, 0xff, 0, 0xff}},
		{"root", scene.Cell{ColorIndex: -1}, color.RGBA{0xcc, 0xcc, 0xcc, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Fill(tt.cell); got != tt.want {
				t.Errorf("Fill() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := NewSimple([]string{"nope"}); err == nil {
		t.Error("NewSimple with invalid colour should fail")
	}
	if fb := ForLayout(scene.Layout{Colors: []string{"nope"}}); len(fb.palette) != len(DefaultPalette) {
		t.Error("ForLayout should fall back to the default palette")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"main.go", 10, "main.go"},
		{"main.go", 5, "mai.."},
		{"漢字テキスト", 6, "漢字.."},
		{"abc", 0, ""},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestFontSize(t *testing.T) {
	if got := FontSize(scene.Cell{Width: 100, Height: 100}); got != fontSizeMax {
		t.Errorf("large cell font = %v", got)
	}
	if got := FontSize(scene.Cell{Width: 100, Height: 5}); got != 0 {
		t.Errorf("short cell font = %v, want 0", got)
	}
	if got := FontSize(scene.Cell{Width: 100, Height: 100, UpperHeight: 20}); got != 12 {
		t.Errorf("header font = %v, want 12", got)
	}
}
