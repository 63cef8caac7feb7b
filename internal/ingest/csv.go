// Package ingest reads raw detector hits into a cells.Container.
//
// Input is CSV with one hit per row:
//
//	geometry_id,hit_id,channel0,channel1,timestamp,value
//
// A leading header row starting with geometry_id is skipped. Rows are grouped into one module per
// geometry id, in first-seen order, and each module's cells are sorted
// column-major so they can be clustered directly.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/sparseccl/internal/cells"
)

// ErrMalformedRow is returned for a row that cannot be parsed as a hit.
var ErrMalformedRow = errors.New("malformed hit row")

const fieldsPerRow = 6

// Read parses hits from r into a container for event. Every header gets
// the default placement and pixel segmentation; channel ranges are taken
// from the hits.
func Read(r io.Reader, event cells.EventID) (*cells.Container, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fieldsPerRow
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.ReuseRecord = true

	var (
		order   []cells.GeometryID
		modules = make(map[cells.GeometryID]*cells.Module)
		hits    = make(map[cells.GeometryID][]cells.Cell)
	)

	for first := true; ; first = false {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, pe.Line, pe.Err)
			}
			return nil, fmt.Errorf("failed to read hits: %w", err)
		}
		if first && isHeader(rec) {
			continue
		}

		line, _ := cr.FieldPos(0)
		geo, c, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}

		m, ok := modules[geo]
		if !ok {
			nm := cells.NewModule(event, geo)
			m = &nm
			modules[geo] = m
			order = append(order, geo)
		}
		m.Extend(c)
		hits[geo] = append(hits[geo], c)
	}

	out := cells.NewContainer(len(order))
	for _, geo := range order {
		cs := hits[geo]
		cells.SortColumnMajor(cs)
		out.Push(*modules[geo], cs)
	}
	return out, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string, event cells.EventID) (*cells.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hits file: %w", err)
	}
	defer f.Close()
	return Read(f, event)
}

// isHeader reports whether rec is the column header row. Any other
// non-numeric row is a malformed hit.
func isHeader(rec []string) bool {
	return strings.EqualFold(strings.TrimSpace(rec[0]), "geometry_id")
}

func parseRow(rec []string) (cells.GeometryID, cells.Cell, error) {
	geo, err := strconv.ParseUint(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return 0, cells.Cell{}, fmt.Errorf("geometry_id %q: %w", rec[0], err)
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 64); err != nil {
		return 0, cells.Cell{}, fmt.Errorf("hit_id %q: %w", rec[1], err)
	}
	c0, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
	if err != nil {
		return 0, cells.Cell{}, fmt.Errorf("channel0 %q: %w", rec[2], err)
	}
	c1, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
	if err != nil {
		return 0, cells.Cell{}, fmt.Errorf("channel1 %q: %w", rec[3], err)
	}
	ts, err := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
	if err != nil {
		return 0, cells.Cell{}, fmt.Errorf("timestamp %q: %w", rec[4], err)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
	if err != nil {
		return 0, cells.Cell{}, fmt.Errorf("value %q: %w", rec[5], err)
	}
	return geo, cells.Cell{Channel0: c0, Channel1: c1, Activation: val, Time: ts}, nil
}
