package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/sirupsen/logrus"
)

// Columns lists the loc.csv header in its canonical order.
var Columns = []string{
	"commit", "author", "date", "time", "timezone", "datetime",
	"file", "line", "depth", "length", "type",
}

// requiredColumns must be present in the header for a row to mean anything.
var requiredColumns = []string{"commit", "datetime"}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04:05 -0700",
}

// zone-less layouts are interpreted in the loader's location
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Loader parses loc.csv into line records.
type Loader struct {
	logger   *logrus.Logger
	location *time.Location
}

// NewLoader creates a loader. Timestamps are converted into loc; a nil
// loc means time.Local.
func NewLoader(logger *logrus.Logger, loc *time.Location) *Loader {
	if loc == nil {
		loc = time.Local
	}
	return &Loader{logger: logger, location: loc}
}

// Location returns the display location used for parsed timestamps.
func (l *Loader) Location() *time.Location {
	return l.location
}

// Load fetches src and parses it.
func (l *Loader) Load(ctx context.Context, src Source) ([]models.LineRecord, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := l.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	l.logger.WithFields(logrus.Fields{
		"source": src.Name(),
		"lines":  len(records),
	}).Debug("line records loaded")

	return records, nil
}

// LoadSafe is Load for page sections: a failure is logged and an empty
// result returned so the rest of the page still renders.
func (l *Loader) LoadSafe(ctx context.Context, src Source) []models.LineRecord {
	records, err := l.Load(ctx, src)
	if err != nil {
		l.logger.WithError(err).WithField("source", src.Name()).Error("failed to load line records")
		return []models.LineRecord{}
	}
	return records
}

// Parse decodes CSV text with a header row. Column order is free.
func (l *Loader) Parse(r io.Reader) ([]models.LineRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []models.LineRecord{}, nil
	}
	if err != nil {
		return nil, errors.ParseError(err, "read csv header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.ParseErrorf(fmt.Errorf("missing column %q", col), "read csv header")
		}
	}

	records := []models.LineRecord{}
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.ParseError(err, "read csv row").WithContext("row", row)
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		rec, err := l.parseRow(get)
		if err != nil {
			return nil, errors.ParseError(err, "decode csv row").WithContext("row", row)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (l *Loader) parseRow(get func(string) string) (models.LineRecord, error) {
	rec := models.LineRecord{
		Commit:   get("commit"),
		Author:   get("author"),
		Time:     get("time"),
		Timezone: get("timezone"),
		File:     get("file"),
		Type:     get("type"),
	}

	var err error
	if rec.Line, err = parseInt(get("line")); err != nil {
		return rec, fmt.Errorf("line: %w", err)
	}
	if rec.Depth, err = parseInt(get("depth")); err != nil {
		return rec, fmt.Errorf("depth: %w", err)
	}
	if rec.Length, err = parseInt(get("length")); err != nil {
		return rec, fmt.Errorf("length: %w", err)
	}

	if rec.Datetime, err = l.ParseTimestamp(get("datetime")); err != nil {
		return rec, fmt.Errorf("datetime: %w", err)
	}

	// date is midnight of the commit day in the commit's own zone
	if d := get("date"); d != "" {
		if rec.Date, err = l.ParseTimestamp(d + "T00:00" + rec.Timezone); err != nil {
			return rec, fmt.Errorf("date: %w", err)
		}
	}

	return rec, nil
}

// ParseTimestamp accepts ISO-8601 timestamps with or without seconds and
// offset. The result is expressed in the loader's location.
func (l *Loader) ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(l.location), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, l.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// parseInt treats an empty cell as zero.
func parseInt(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// Localize re-expresses stored timestamps in the loader's location.
func (l *Loader) Localize(records []models.LineRecord) []models.LineRecord {
	for i := range records {
		records[i].Datetime = records[i].Datetime.In(l.location)
		if !records[i].Date.IsZero() {
			records[i].Date = records[i].Date.In(l.location)
		}
	}
	return records
}
