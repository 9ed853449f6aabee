package currency

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amirasaad/fxconvert/pkg/money"
)

//go:embed meta.csv
var metaCSV string

const metaColumns = 7

// LoadCurrencyMetaCSV loads currency metadata from a CSV file or embedded content.
// If path is empty, it uses the embedded CSV content. Inactive rows are skipped.
func LoadCurrencyMetaCSV(path string) ([]CurrencyMeta, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	} else {
		r = strings.NewReader(metaCSV)
	}

	return parseCurrencyMetaCSV(r)
}

func parseCurrencyMetaCSV(r io.Reader) ([]CurrencyMeta, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("invalid CSV format: missing header")
	}
	if len(records[0]) < metaColumns {
		return nil, fmt.Errorf(
			"invalid CSV format: expected at least %d columns, got %d",
			metaColumns,
			len(records[0]),
		)
	}

	var metas []CurrencyMeta
	for i, rec := range records[1:] {
		if len(rec) < metaColumns {
			continue
		}
		if strings.ToLower(strings.TrimSpace(rec[6])) != "true" {
			continue
		}
		code, err := money.ParseCode(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		decimals, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			decimals = DefaultDecimals
		}
		metas = append(metas, CurrencyMeta{
			Code:     code,
			Name:     rec[1],
			Symbol:   rec[2],
			Decimals: decimals,
			Country:  rec[4],
			Region:   rec[5],
		})
	}
	return metas, nil
}
