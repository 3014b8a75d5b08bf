package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

func init() {
	// Allow records with missing trailing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		return r
	})
}

// LoadFromZip parses a GTFS zip file from disk.
func LoadFromZip(filename string) (*Feed, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open GTFS archive: %w", err)
	}
	defer zr.Close()
	return loadArchive(&zr.Reader)
}

// LoadFromBytes parses a GTFS zip held in memory.
func LoadFromBytes(data []byte) (*Feed, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open GTFS archive: %w", err)
	}
	return loadArchive(zr)
}

func loadArchive(zr *zip.Reader) (*Feed, error) {
	feed := &Feed{}
	fileMap := map[string]any{
		"stops.txt":      &feed.Stops,
		"routes.txt":     &feed.Routes,
		"trips.txt":      &feed.Trips,
		"stop_times.txt": &feed.StopTimes,
	}
	loaded := map[string]bool{}

	for _, zipFile := range zr.File {
		name := strings.ToLower(path.Base(zipFile.Name))
		destination, ok := fileMap[name]
		if !ok {
			log.Debug().Str("file", zipFile.Name).Msg("Skipping GTFS file")
			continue
		}
		log.Debug().Str("file", zipFile.Name).Msg("Loading file")
		if err := unmarshalFile(zipFile, destination); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", zipFile.Name, err)
		}
		loaded[name] = true
	}

	for name := range fileMap {
		if !loaded[name] {
			return nil, fmt.Errorf("GTFS archive has no %s", name)
		}
	}
	log.Info().
		Int("stops", len(feed.Stops)).
		Int("routes", len(feed.Routes)).
		Int("trips", len(feed.Trips)).
		Int("stop_times", len(feed.StopTimes)).
		Msg("Loaded GTFS feed")
	return feed, nil
}

func unmarshalFile(f *zip.File, destination any) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	return gocsv.Unmarshal(r, destination)
}
