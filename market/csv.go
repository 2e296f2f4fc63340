package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
)

// Header columns required in a candle CSV, in any order.
var requiredColumns = []string{"ts", "o", "hi", "lo", "c", "v"}

// LoadCandlesCSV reads a candle CSV with header ts,o,hi,lo,c,v and returns
// the candles sorted ascending by timestamp. Rows that fail to parse are
// skipped. Files ending in .xz are decompressed transparently, since large
// historical dumps usually ship compressed.
func LoadCandlesCSV(path string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candle csv: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		src = xr
	}

	return ReadCandles(src)
}

// ReadCandles parses candle CSV rows from r. The header row is mandatory.
func ReadCandles(r io.Reader) ([]Candle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	// Tolerate a UTF-8 BOM on the first cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header missing %v; expected %v", missing, requiredColumns)
	}

	var out []Candle
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Row-level damage should not kill the load.
			continue
		}
		c, err := parseRow(row, col)
		if err != nil {
			continue
		}
		out = append(out, c)
	}

	SortByTime(out)
	return out, nil
}

func parseRow(row []string, col map[string]int) (Candle, error) {
	get := func(name string) (string, error) {
		i := col[name]
		if i >= len(row) {
			return "", fmt.Errorf("short row: no %q field", name)
		}
		return strings.TrimSpace(row[i]), nil
	}

	var c Candle
	s, err := get("ts")
	if err != nil {
		return c, err
	}
	if c.TS, err = strconv.ParseInt(s, 10, 64); err != nil {
		return c, err
	}

	for _, fld := range []struct {
		name string
		dst  *float64
	}{
		{"o", &c.Open},
		{"hi", &c.High},
		{"lo", &c.Low},
		{"c", &c.Close},
		{"v", &c.Volume},
	} {
		s, err := get(fld.name)
		if err != nil {
			return c, err
		}
		if *fld.dst, err = strconv.ParseFloat(s, 64); err != nil {
			return c, err
		}
	}
	return c, nil
}
