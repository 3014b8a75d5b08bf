package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
	"github.com/theoremus-urban-solutions/transport-catalogue/utils"
)

func testSettings() Settings {
	return Settings{
		Width:             200,
		Height:            200,
		Padding:           50,
		LineWidth:         14,
		StopRadius:        5,
		BusLabelFontSize:  20,
		BusLabelOffset:    svg.Point{X: 7, Y: 15},
		StopLabelFontSize: 18,
		StopLabelOffset:   svg.Point{X: 7, Y: -3},
		UnderlayerColor:   svg.RGBA{Red: 255, Green: 255, Blue: 255, Opacity: 0.85},
		UnderlayerWidth:   3,
		ColorPalette:      []svg.Color{svg.NamedColor("green"), svg.RGB{Red: 255, Green: 160, Blue: 0}},
	}
}

func newTestCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat := catalogue.New()
	stops := []struct {
		name     string
		lat, lng float64
	}{
		{"A", 55.0, 37.0},
		{"B", 55.01, 37.02},
		{"Lonely", 10, 10},
	}
	for _, s := range stops {
		if _, err := cat.AddStop(s.name, s.lat, s.lng); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := cat.IngestBus("14", []string{"A", "B"}, false); err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestSphereProjector(t *testing.T) {
	pts := []utils.Coordinates{{Lat: 55.0, Lng: 37.0}, {Lat: 55.01, Lng: 37.02}}
	p := NewSphereProjector(pts, 200, 200, 50)

	got := p.Project(pts[1])
	if !utils.IsZero(got.X-150) || !utils.IsZero(got.Y-50) {
		t.Errorf("unexpected projection of north-east corner: %+v", got)
	}
	got = p.Project(pts[0])
	if !utils.IsZero(got.X-50) || !utils.IsZero(got.Y-100) {
		t.Errorf("unexpected projection of south-west corner: %+v", got)
	}
}

func TestSphereProjector_Degenerate(t *testing.T) {
	single := []utils.Coordinates{{Lat: 1, Lng: 2}}
	p := NewSphereProjector(single, 100, 100, 10)
	if got := p.Project(single[0]); got != (svg.Point{X: 10, Y: 10}) {
		t.Errorf("single point should land on the padding corner, got %+v", got)
	}

	empty := NewSphereProjector(nil, 100, 100, 10)
	if got := empty.Project(utils.Coordinates{Lat: 5, Lng: 5}); got != (svg.Point{X: 10, Y: 10}) {
		t.Errorf("empty projector should map to the padding corner, got %+v", got)
	}
}

func TestMapRenderer_Layers(t *testing.T) {
	cat := newTestCatalogue(t)
	doc := New(testSettings(), cat).Build()

	// 1 line, 2 bus labels x 2, 2 stop points, 2 stop labels x 2
	if doc.Len() != 11 {
		t.Errorf("expected 11 objects, got %d", doc.Len())
	}

	var buf bytes.Buffer
	if err := New(testSettings(), cat).Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	wantLine := `<polyline points="50,100 150,50 50,100" fill="none" stroke="green" stroke-width="14" stroke-linecap="round" stroke-linejoin="round"/>`
	if !strings.Contains(out, wantLine) {
		t.Errorf("missing bus line %s in\n%s", wantLine, out)
	}
	wantLabel := `<text fill="green" x="150" y="50" dx="7" dy="15" font-size="20" font-family="Verdana" font-weight="bold">14</text>`
	if !strings.Contains(out, wantLabel) {
		t.Errorf("missing terminal label %s in\n%s", wantLabel, out)
	}
	wantUnder := `<text fill="rgba(255,255,255,0.85)" stroke="rgba(255,255,255,0.85)" stroke-width="3" stroke-linecap="round" stroke-linejoin="round" x="50" y="100" dx="7" dy="15" font-size="20" font-family="Verdana" font-weight="bold">14</text>`
	if !strings.Contains(out, wantUnder) {
		t.Errorf("missing label underlayer %s in\n%s", wantUnder, out)
	}
	if !strings.Contains(out, `<circle cx="50" cy="100" r="5" fill="white"/>`) {
		t.Errorf("missing stop point in\n%s", out)
	}
	if strings.Contains(out, "Lonely") {
		t.Error("stops without service must not be drawn")
	}

	// stop labels are drawn after every circle
	if strings.LastIndex(out, "<circle") > strings.Index(out, ">A</text>") {
		t.Error("stop labels should be drawn above stop points")
	}
}

func TestMapRenderer_RoundtripHasSingleLabel(t *testing.T) {
	cat := newTestCatalogue(t)
	if _, err := cat.IngestBus("ring", []string{"A", "B", "A"}, true); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := New(testSettings(), cat).Render(&buf); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), ">ring</text>"); n != 2 {
		t.Errorf("roundtrip bus should have one label (2 text elements), got %d", n)
	}
	// second bus takes the second palette color
	if !strings.Contains(buf.String(), `stroke="rgb(255,160,0)"`) {
		t.Error("second bus should use the second palette color")
	}
}

func TestMapRenderer_Deterministic(t *testing.T) {
	cat := newTestCatalogue(t)
	for _, name := range []string{"z", "m", "a"} {
		if _, err := cat.IngestBus(name, []string{"B", "A"}, false); err != nil {
			t.Fatal(err)
		}
	}
	var first, second bytes.Buffer
	if err := New(testSettings(), cat).Render(&first); err != nil {
		t.Fatal(err)
	}
	if err := New(testSettings(), cat).Render(&second); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("rendering the same catalogue twice should be byte-identical")
	}
}

func TestMapRenderer_EmptyPalette(t *testing.T) {
	settings := testSettings()
	settings.ColorPalette = nil
	var buf bytes.Buffer
	if err := New(settings, newTestCatalogue(t)).Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `stroke="none"`) {
		t.Error("empty palette should draw lines with the none color")
	}
}
