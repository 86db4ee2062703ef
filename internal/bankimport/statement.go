package bankimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbertolucci/conciliador/internal/encoding"
)

// statement columns: external_id;date;description;amount
const statementColumns = 4

const statementDateLayout = "02/01/2006"

// ParseStatement reads a semicolon-separated bank statement into movements.
// The file may carry any common charset (banks still export Windows-1252)
// and an optional header row. Amounts use Brazilian formatting: "1.234,56",
// negative for money out.
func ParseStatement(r io.Reader) ([]Movement, error) {
	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding statement: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = statementColumns

	var movements []Movement

	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading statement: %w", err)
		}

		line++

		date, err := time.Parse(statementDateLayout, strings.TrimSpace(record[1]))
		if err != nil {
			// Tolerate a single header row: only when the amount column is
			// not numeric either. A data row with a malformed date must
			// fail, not vanish.
			if line == 1 {
				if _, amountErr := parseBrazilianAmount(strings.TrimSpace(record[3])); amountErr != nil {
					continue
				}
			}

			return nil, fmt.Errorf("line %d: parsing date %q: %w", line, record[1], err)
		}

		amount, err := parseBrazilianAmount(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing amount %q: %w", line, record[3], err)
		}

		movements = append(movements, Movement{
			ExternalID:  strings.TrimSpace(record[0]),
			Description: strings.TrimSpace(record[2]),
			AmountCents: amount,
			Date:        date.UTC(),
		})
	}

	return movements, nil
}

// parseBrazilianAmount parses amounts like "1.234,56" or "-588,74" to cents.
func parseBrazilianAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
