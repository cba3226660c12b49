package render

import (
	"testing"
)

func TestShape(t *testing.T) {
	tests := []struct {
		kind Style
		want string
	}{
		{kind: StyleSquare, want: `<rect x="40" y="50" width="10" height="10" fill="#000000"/>`},
		{kind: StyleRounded, want: `<rect x="40" y="50" width="10" height="10" rx="2.5" ry="2.5" fill="#000000"/>`},
		{kind: StyleDots, want: `<circle cx="45" cy="55" r="4.5" fill="#000000"/>`},
		{kind: StyleExtraRounded, want: `<rect x="40" y="50" width="10" height="10" rx="5" ry="5" fill="#000000"/>`},
		{kind: StyleDot, want: `<rect x="40" y="50" width="10" height="10" fill="#000000"/>`},
		{kind: Style("hexagon"), want: `<rect x="40" y="50" width="10" height="10" fill="#000000"/>`},
		{kind: "", want: `<rect x="40" y="50" width="10" height="10" fill="#000000"/>`},
	}
	for _, test := range tests {
		t.Run(string(test.kind), func(t *testing.T) {
			if got := Shape(40, 50, 10, "#000000", test.kind); got != test.want {
				t.Errorf("got  %s\nwant %s", got, test.want)
			}
		})
	}
}

func TestShapeEscapesColor(t *testing.T) {
	got := Shape(0, 0, 10, `red"/><script>`, StyleSquare)
	want := `<rect x="0" y="0" width="10" height="10" fill="red&#34;/&gt;&lt;script&gt;"/>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{DotsColor: "#ff0000"}.WithDefaults()
	want := Options{
		DotsColor:         "#ff0000",
		BackgroundColor:   "#ffffff",
		DotsType:          StyleSquare,
		CornersSquareType: StyleSquare,
		LogoSize:          0.2,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if NewLogo(nil) != nil {
		t.Error("NewLogo(nil) must be nil")
	}
}
