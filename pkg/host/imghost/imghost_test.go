package imghost_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/vango-dev/vrender/pkg/host/imghost"
	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vdom"
)

func mount(t *testing.T, host *imghost.Host, tree func() *vdom.VNode) {
	t.Helper()
	def := vdom.Define("Card", nil, func(vdom.Proxy) *vdom.VNode { return tree() })
	if _, err := runtime.CreateRenderer(host).CreateApp(def).Mount(host.Root()); err != nil {
		t.Fatalf("mount: %v", err)
	}
}

func TestLines(t *testing.T) {
	host := imghost.New(imghost.Options{})
	mount(t, host, func() *vdom.VNode {
		return vdom.Section(vdom.H1("Title"), vdom.Ul(vdom.Li("a")))
	})

	lines := imghost.Lines(host.Root())
	want := []imghost.Line{
		{Text: "Title", Depth: 1, Accent: true},
		{Text: "a", Depth: 2},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestDraw_SizeAndInk(t *testing.T) {
	host := imghost.New(imghost.Options{Padding: 4})
	mount(t, host, func() *vdom.VNode { return vdom.P("hello") })

	img := host.Draw(host.Root())
	b := img.Bounds()

	// basicfont.Face7x13: 7px advance, 13px line height.
	if b.Dx() != 5*7+8 || b.Dy() != 13+8 {
		t.Errorf("unexpected size %dx%d", b.Dx(), b.Dy())
	}
	if got := img.At(0, 0); !sameColor(got, color.White) {
		t.Errorf("expected white background, got %v", got)
	}

	inked := false
	for y := b.Min.Y; y < b.Max.Y && !inked; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !sameColor(img.At(x, y), color.White) {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("expected text to be drawn")
	}
}

func TestEncodePNG(t *testing.T) {
	host := imghost.New(imghost.Options{})
	mount(t, host, func() *vdom.VNode { return vdom.H2("png") })

	var buf bytes.Buffer
	if err := host.EncodePNG(&buf, host.Root()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() == 0 {
		t.Error("expected a non-empty image")
	}
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
