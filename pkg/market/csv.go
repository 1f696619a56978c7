package market

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampFormats are tried in order when a candle timestamp is not a
// unix epoch.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseCSV parses candles from a CSV stream. Rows carry
// timestamp,open,high,low,close[,volume]; a header row is detected and
// skipped. Malformed rows fail with their row number.
func ParseCSV(r io.Reader, symbol string) ([]Candle, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var candles []Candle
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row+1, err)
		}
		row++

		if row == 1 && isHeader(record) {
			continue
		}

		c, err := parseRecord(record, symbol)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
		candles = append(candles, c)
	}

	return candles, nil
}

// ReadCSV loads candles from a CSV file.
func ReadCSV(path, symbol string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	candles, err := ParseCSV(f, symbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candles, nil
}

// parseRecord parses one CSV record into a candle.
func parseRecord(record []string, symbol string) (Candle, error) {
	c := Candle{Symbol: symbol}

	if len(record) < 5 {
		return c, fmt.Errorf("expected at least 5 fields, got %d", len(record))
	}

	ts, err := parseTimestamp(record[0])
	if err != nil {
		return c, err
	}
	c.Time = ts

	if c.Open, err = decimal.NewFromString(record[1]); err != nil {
		return c, fmt.Errorf("parse open: %w", err)
	}
	if c.High, err = decimal.NewFromString(record[2]); err != nil {
		return c, fmt.Errorf("parse high: %w", err)
	}
	if c.Low, err = decimal.NewFromString(record[3]); err != nil {
		return c, fmt.Errorf("parse low: %w", err)
	}
	if c.Close, err = decimal.NewFromString(record[4]); err != nil {
		return c, fmt.Errorf("parse close: %w", err)
	}

	// Volume is optional.
	if len(record) > 5 && record[5] != "" {
		if c.Volume, err = decimal.NewFromString(record[5]); err != nil {
			return c, fmt.Errorf("parse volume: %w", err)
		}
	}

	return c, nil
}

// parseTimestamp accepts unix seconds or one of timestampFormats.
func parseTimestamp(s string) (time.Time, error) {
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format: %s", s)
}

// isHeader reports whether a record looks like a header row.
func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	for _, h := range []string{"timestamp", "time", "date", "datetime", "open"} {
		if first == h {
			return true
		}
	}
	return false
}
