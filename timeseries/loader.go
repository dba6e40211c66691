package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadText reads whitespace-delimited numeric observations from r, in the
// order they appear. Every token must parse as a number; empty input is an
// error.
func ReadText(r io.Reader) (*Series, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var values []float64
	for scanner.Scan() {
		tok := scanner.Text()
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("observation %d: invalid number %q", len(values)+1, tok)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, errors.New("no observations in input")
	}

	return New(values), nil
}

// LoadText loads a whitespace-delimited observations file as a series.
func LoadText(filename string) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := ReadText(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return series, nil
}

// ReadCSVColumn reads a single column from CSV data. The first row is treated
// as a header; an empty column name selects the last column. Rows with empty
// or non-numeric values in the selected column are skipped.
func ReadCSVColumn(r io.Reader, column string) (*Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	colIdx := len(header) - 1
	if column != "" {
		colIdx = -1
		for i, h := range header {
			if strings.TrimSpace(strings.Trim(h, "\"")) == column {
				colIdx = i
				break
			}
		}
		if colIdx == -1 {
			return nil, fmt.Errorf("column %q not found", column)
		}
	}

	var values []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if colIdx >= len(record) {
			continue
		}
		valStr := strings.TrimSpace(strings.Trim(record[colIdx], "\""))
		if valStr == "" || valStr == "NA" || valStr == "NaN" || valStr == "null" {
			continue
		}
		v, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			continue // skip non-numeric rows
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	series := New(values)
	series.Name = column
	return series, nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename, column string) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := ReadCSVColumn(file, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return series, nil
}

// SaveText writes values to a file, one per line.
func SaveText(values []float64, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	for _, v := range values {
		writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		writer.WriteString("\n")
	}

	return nil
}
