package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type ProductWriter interface {
	Create(ctx context.Context, in productrepo.CreateProductInput) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports (title, image_url, price columns)
// and inserts the products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and inserts one product per row. Rows with a blank
// title or an unparsable/negative price are rejected with a row number.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["title"]; !ok {
		return 0, errors.New("missing title column")
	}
	if _, ok := index["price"]; !ok {
		return 0, errors.New("missing price column")
	}

	imported := 0
	rowNum := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", rowNum, err)
		}
		rowNum++

		in, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if in == nil {
			continue
		}

		if _, err := i.productRepo.Create(ctx, *in); err != nil {
			return imported, fmt.Errorf("row %d: insert %q: %w", rowNum, in.Title, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*productrepo.CreateProductInput, error) {
	title := field(record, index, "title")
	imageURL := field(record, index, "image_url")
	priceRaw := field(record, index, "price")

	if title == "" && imageURL == "" && priceRaw == "" {
		return nil, nil // blank row
	}
	if title == "" {
		return nil, errors.New("title is required")
	}

	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", priceRaw, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("negative price %q", priceRaw)
	}

	return &productrepo.CreateProductInput{
		Title:    title,
		ImageURL: imageURL,
		Price:    price.Round(2),
	}, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
