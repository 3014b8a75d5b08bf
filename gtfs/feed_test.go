package gtfs

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/theoremus-urban-solutions/transport-catalogue/requests"
)

var testFeedFiles = map[string]string{
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
		"S1,Central,0,0\n" +
		"S2,Market,0,0.01\n" +
		"S3,Central,0,0.02\n" +
		"S4,Depot,1,1\n",
	"routes.txt": "route_id,route_short_name,route_long_name,route_type\n" +
		"R1,10,Ten,3\n" +
		"R2,,Circle Line,3\n" +
		"R3,,,3\n",
	"trips.txt": "route_id,service_id,trip_id,direction_id\n" +
		"R1,WD,T1,0\n" +
		"R1,WD,T2,1\n" +
		"R2,WD,T3,0\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,08:02:00,08:02:00,S2,2\n" +
		"T1,08:00:00,08:00:00,S1,1\n" +
		"T1,08:05:00,08:05:00,S3,3\n" +
		"T2,09:00:00,09:00:00,S3,1\n" +
		"T2,09:05:00,09:05:00,S1,2\n" +
		"T3,10:00:00,10:00:00,S2,1\n" +
		"T3,10:03:00,10:03:00,S3,2\n" +
		"T3,10:06:00,10:06:00,S2,3\n",
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\nA,Agency,http://example.com,UTC\n",
}

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gtfs.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromZip(t *testing.T) {
	feed, err := LoadFromZip(writeZip(t, testFeedFiles))
	if err != nil {
		t.Fatalf("LoadFromZip: %v", err)
	}
	if len(feed.Stops) != 4 || len(feed.Routes) != 3 || len(feed.Trips) != 3 || len(feed.StopTimes) != 8 {
		t.Errorf("unexpected record counts: %d stops, %d routes, %d trips, %d stop times",
			len(feed.Stops), len(feed.Routes), len(feed.Trips), len(feed.StopTimes))
	}
	if feed.Stops[1] != (Stop{ID: "S2", Name: "Market", Latitude: 0, Longitude: 0.01}) {
		t.Errorf("unexpected stop %+v", feed.Stops[1])
	}
}

func TestLoadFromBytes_NestedFolder(t *testing.T) {
	nested := map[string]string{}
	for name, content := range testFeedFiles {
		nested["feed/"+name] = content
	}
	data, err := os.ReadFile(writeZip(t, nested))
	if err != nil {
		t.Fatal(err)
	}
	feed, err := LoadFromBytes(data)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if len(feed.StopTimes) != 8 {
		t.Errorf("expected 8 stop times, got %d", len(feed.StopTimes))
	}
}

func TestLoadFromZip_MissingFile(t *testing.T) {
	files := map[string]string{}
	for name, content := range testFeedFiles {
		if name != "stop_times.txt" {
			files[name] = content
		}
	}
	if _, err := LoadFromZip(writeZip(t, files)); err == nil || !strings.Contains(err.Error(), "stop_times.txt") {
		t.Errorf("expected an error naming stop_times.txt, got %v", err)
	}
	if _, err := LoadFromZip(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Error("expected an error for a missing archive")
	}
}

func TestFeed_BaseRequests(t *testing.T) {
	feed, err := LoadFromZip(writeZip(t, testFeedFiles))
	if err != nil {
		t.Fatal(err)
	}

	got := feed.BaseRequests()
	want := []requests.BaseRequest{
		{Type: "Stop", Name: "Central (S1)", Latitude: 0, Longitude: 0, RoadDistances: map[string]int64{"Market": 1112}},
		{Type: "Stop", Name: "Central (S3)", Latitude: 0, Longitude: 0.02, RoadDistances: map[string]int64{"Market": 1112}},
		{Type: "Stop", Name: "Market", Latitude: 0, Longitude: 0.01, RoadDistances: map[string]int64{"Central (S3)": 1112}},
		{Type: "Bus", Name: "10", Stops: []string{"Central (S1)", "Market", "Central (S3)"}, IsRoundtrip: false},
		{Type: "Bus", Name: "Circle Line", Stops: []string{"Market", "Central (S3)", "Market"}, IsRoundtrip: true},
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("base requests mismatch:\n%s", strings.Join(diff, "\n"))
	}

	cat, err := requests.Ingest(got)
	if err != nil {
		t.Fatalf("generated requests should ingest cleanly: %v", err)
	}
	info := cat.GetBusInfo("10")
	if info.StopCount != 5 || info.RoadLength != 4*1112 {
		t.Errorf("unexpected bus info %+v", info)
	}
}

func TestFeed_MakeBaseDocument(t *testing.T) {
	feed, err := LoadFromZip(writeZip(t, testFeedFiles))
	if err != nil {
		t.Fatal(err)
	}
	doc := feed.MakeBaseDocument("city.db", DefaultRouting)

	// the JSON must be accepted by make_base as is
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := requests.DecodeMakeBase(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("DecodeMakeBase: %v\n%s", err, data)
	}
	if decoded.SerializationSettings.File != "city.db" || len(decoded.BaseRequests) != 5 {
		t.Errorf("unexpected document %# v", pretty.Formatter(decoded))
	}
	if *decoded.RoutingSettings != DefaultRouting {
		t.Errorf("unexpected routing settings %+v", decoded.RoutingSettings)
	}
}
