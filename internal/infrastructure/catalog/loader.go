package catalog

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/YK12321/Budgeteer/internal/domain"
)

const csvFieldCount = 8

// LoadCSV reads the catalog snapshot from a CSV file with the columns
// id, name, description, price, store, categories (comma-joined), image
// URL, price date. The first line is a header. Malformed rows are skipped
// with a warning; only an unreadable file is an error.
func (s *Store) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading catalog file: %w", err)
	}

	loaded := 0
	for i, fields := range records {
		if i == 0 {
			continue // header
		}
		item, err := parseRecord(fields)
		if err != nil {
			log.Printf("[CATALOG] skipping line %d: %v", i+1, err)
			continue
		}
		s.items = append(s.items, item)
		loaded++
	}

	log.Printf("[CATALOG] loaded %d items from %s", loaded, path)
	return nil
}

func parseRecord(fields []string) (domain.Item, error) {
	if len(fields) != csvFieldCount {
		return domain.Item{}, fmt.Errorf("expected %d fields, got %d", csvFieldCount, len(fields))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return domain.Item{}, fmt.Errorf("invalid item id %q", fields[0])
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return domain.Item{}, fmt.Errorf("invalid price %q", fields[3])
	}
	if price < 0 {
		return domain.Item{}, fmt.Errorf("negative price %q", fields[3])
	}

	store := strings.TrimSpace(fields[4])
	if store == "" {
		return domain.Item{}, fmt.Errorf("empty store")
	}

	return domain.Item{
		ItemID:       id,
		Name:         strings.TrimSpace(fields[1]),
		Description:  strings.TrimSpace(fields[2]),
		CurrentPrice: price,
		Store:        store,
		CategoryTags: parseCategories(fields[5]),
		ImageURL:     strings.TrimSpace(fields[6]),
		PriceDate:    strings.TrimSpace(fields[7]),
	}, nil
}

// parseCategories splits a comma-joined tag list, trimming whitespace and
// dropping empty entries.
func parseCategories(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
