// Package optcsv reads contract batches from CSV and writes valued records
// back out. Input headers are matched case-insensitively and may arrive in
// any column order; output goes through gocsv with the record's tag order.
package optcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/akerlund/optbatch/options"
)

// ParseFile reads a contract CSV from disk, retrying the open a few times
// before giving up.
func ParseFile(path string) (*options.ContractSet, error) {
	f, err := OpenRetry(path, defaultOpenAttempts, defaultOpenDelay)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ParseReader parses contract rows from r. The header row is required and
// resolves column positions; "sigma" is accepted as an alias for the
// volatility column. Errors name the offending row and column.
func ParseReader(r io.Reader) (*options.ContractSet, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	header := rows[0]
	tickerCol, err := requireColumn(header, "ticker")
	if err != nil {
		return nil, err
	}
	typeCol, err := requireColumn(header, "opt_type")
	if err != nil {
		return nil, err
	}
	underlyingCol, err := requireColumn(header, "underlying")
	if err != nil {
		return nil, err
	}
	strikeCol, err := requireColumn(header, "strike")
	if err != nil {
		return nil, err
	}
	settleCol, err := requireColumn(header, "settle")
	if err != nil {
		return nil, err
	}
	maturityCol, err := requireColumn(header, "maturity")
	if err != nil {
		return nil, err
	}
	dividendCol, err := requireColumn(header, "dividend")
	if err != nil {
		return nil, err
	}
	rfrCol, err := requireColumn(header, "rfr")
	if err != nil {
		return nil, err
	}
	volCol, err := requireColumn(header, "volatility", "sigma")
	if err != nil {
		return nil, err
	}

	n := len(rows) - 1
	tickers := make([]string, 0, n)
	types := make([]options.OptionType, 0, n)
	underlying := make([]float64, 0, n)
	strike := make([]float64, 0, n)
	settles := make([]time.Time, 0, n)
	maturities := make([]time.Time, 0, n)
	dividend := make([]float64, 0, n)
	rfr := make([]float64, 0, n)
	volatility := make([]float64, 0, n)

	for i, row := range rows[1:] {
		line := i + 2 // header is row 1

		typ, err := options.ParseOptionType(row[typeCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		u, err := floatCell(row, underlyingCol, "underlying", line)
		if err != nil {
			return nil, err
		}
		k, err := floatCell(row, strikeCol, "strike", line)
		if err != nil {
			return nil, err
		}
		settle, err := timeCell(row, settleCol, "settle", line)
		if err != nil {
			return nil, err
		}
		maturity, err := timeCell(row, maturityCol, "maturity", line)
		if err != nil {
			return nil, err
		}
		q, err := floatCell(row, dividendCol, "dividend", line)
		if err != nil {
			return nil, err
		}
		r, err := floatCell(row, rfrCol, "rfr", line)
		if err != nil {
			return nil, err
		}
		sigma, err := floatCell(row, volCol, "volatility", line)
		if err != nil {
			return nil, err
		}

		tickers = append(tickers, strings.TrimSpace(row[tickerCol]))
		types = append(types, typ)
		underlying = append(underlying, u)
		strike = append(strike, k)
		settles = append(settles, settle)
		maturities = append(maturities, maturity)
		dividend = append(dividend, q)
		rfr = append(rfr, r)
		volatility = append(volatility, sigma)
	}

	return options.NewContractSet(tickers, types, underlying, strike,
		settles, maturities, dividend, rfr, volatility)
}

func requireColumn(header []string, names ...string) (int, error) {
	for i, cell := range header {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(cell), name) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("missing required column %q", names[0])
}

func floatCell(row []string, col int, name string, line int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: bad %s value %q", line, name, row[col])
	}
	return v, nil
}

func timeCell(row []string, col int, name string, line int) (time.Time, error) {
	t, err := ParseTimestamp(row[col])
	if err != nil {
		return time.Time{}, fmt.Errorf("row %d: bad %s value: %w", line, name, err)
	}
	return t, nil
}
