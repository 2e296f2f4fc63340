package exchange

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// DownloadCSV fetches up to limit candles from the client and writes them as
// a loader-compatible CSV (header ts,o,hi,lo,c,v) at path.
func DownloadCSV(ctx context.Context, c Client, symbol, interval string, limit int, path string) error {
	candles, err := c.GetCandles(ctx, symbol, interval, limit)
	if err != nil {
		return fmt.Errorf("download candles: %w", err)
	}
	if len(candles) == 0 {
		return fmt.Errorf("download candles: %s returned no data for %s", c.Name(), symbol)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create candle csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ts", "o", "hi", "lo", "c", "v"}); err != nil {
		return err
	}
	for _, k := range candles {
		rec := []string{
			strconv.FormatInt(k.TS, 10),
			fcsv(k.Open),
			fcsv(k.High),
			fcsv(k.Low),
			fcsv(k.Close),
			fcsv(k.Volume),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Info().
		Str("exchange", c.Name()).
		Str("symbol", symbol).
		Str("interval", interval).
		Int("candles", len(candles)).
		Str("path", path).
		Msg("candle download complete")
	return nil
}

func fcsv(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
