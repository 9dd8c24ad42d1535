package categories

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kontovy/kontovy/internal/model"
)

const (
	numFields = 5
	colID     = 0
	colName   = 1
	colIcon   = 2
	colColor  = 3
	colParent = 4
)

// ReadCategories reads a category registry CSV.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes a category registry CSV.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "name", "icon", "color", "parent_id"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, cat := range cats {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colID] = cat.ID
	row[colName] = cat.Name
	row[colIcon] = cat.Icon
	row[colColor] = cat.Color
	row[colParent] = cat.ParentID
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Category{}, fmt.Errorf("empty category id")
	}
	return model.Category{
		ID:       record[colID],
		Name:     record[colName],
		Icon:     record[colIcon],
		Color:    record[colColor],
		ParentID: record[colParent],
	}, nil
}
