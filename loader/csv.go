// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/bloc-alignment/models"
)

var ErrMissingColumn = errors.New("missing required column")

// Accepted header names per field. The UN Digital Library export uses the
// undl_id / ms_name / ms_vote names.
var (
	resolutionColumns = []string{"resolution_id", "undl_id"}
	dateColumns       = []string{"date"}
	countryColumns    = []string{"country_name", "ms_name"}
	voteColumns       = []string{"vote_code", "ms_vote"}
	topicColumns      = []string{"topic_label", "topic"}
)

// ReadCSV reads the raw vote table. Only a missing header column or a
// failing reader is an error. A row the CSV parser rejects comes back with
// Malformed set, and bad values are left for Load to count.
func ReadCSV(r io.Reader) ([]models.RawVoteRow, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := columnIndex(header, resolutionColumns, dateColumns, countryColumns, voteColumns)
	if err != nil {
		return nil, err
	}

	return readRows(cr, cols)
}

// recordReader is the part of *csv.Reader that readRows needs
type recordReader interface {
	Read() ([]string, error)
}

func readRows(cr recordReader, cols []int) ([]models.RawVoteRow, error) {
	var rows []models.RawVoteRow
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rows = append(rows, models.RawVoteRow{Line: line, Malformed: parseErr.Err.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		rows = append(rows, models.RawVoteRow{
			Line:         line,
			ResolutionID: field(record, cols[0]),
			Date:         field(record, cols[1]),
			CountryName:  field(record, cols[2]),
			VoteCode:     field(record, cols[3]),
		})
	}

	return rows, nil
}

// ReadTopics reads a resolution_id → topic_label mapping. Blank labels are
// skipped; the first label for a resolution wins.
func ReadTopics(r io.Reader) (map[string]string, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read topic header: %w", err)
	}
	cols, err := columnIndex(header, resolutionColumns, topicColumns)
	if err != nil {
		return nil, err
	}

	topics := make(map[string]string)
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read topic row %d: %w", line, err)
		}
		id := strings.TrimSpace(field(record, cols[0]))
		label := strings.TrimSpace(field(record, cols[1]))
		if id == "" || label == "" {
			continue
		}
		if _, exists := topics[id]; !exists {
			topics[id] = label
		}
	}

	return topics, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	// a stray quote inside a field is kept as a literal
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

// columnIndex finds one column per candidate list, in order
func columnIndex(header []string, wanted ...[]string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		positions[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := make([]int, len(wanted))
	for i, candidates := range wanted {
		found := false
		for _, name := range candidates {
			if pos, ok := positions[name]; ok {
				out[i] = pos
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(candidates, " or "))
		}
	}
	return out, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
