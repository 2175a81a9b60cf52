// Package product defines the canonical product record and the normalizer
// that maps raw store payloads into fully populated records.
package product

import (
	"math"

	"go.uber.org/zap"
)

// Record is the canonical product shape returned to clients. Every field is
// always populated; absent payload keys receive typed defaults.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Rating      float64  `json:"rating"`
	Ingredients string   `json:"ingredients"`
	Description string   `json:"description"`
	Summary     string   `json:"summary"`
	Effects     string   `json:"effects"`
	Reviews     []string `json:"reviews"`
	Image       string   `json:"image"`
	Distance    float64  `json:"distance"`
}

// Fallback returns the documented placeholder record set used whenever the
// payload shape cannot be interpreted.
func Fallback() []Record {
	return []Record{{
		Name:        "Product",
		Brand:       "Brand",
		Rating:      0.0,
		Ingredients: "Substances",
		Description: "description",
		Summary:     "summary",
		Effects:     "effects",
		Reviews:     []string{"Review"},
	}}
}

// Normalize maps a raw query payload (data -> Get -> class -> rows) into
// records. It never fails: a malformed payload yields Fallback() and a
// logged diagnostic so the response shape stays well-formed.
func Normalize(data map[string]any, class string, logger *zap.Logger) []Record {
	rows, ok := rowsFromData(data, class)
	if !ok {
		logger.Warn("Unexpected result payload shape, returning fallback records",
			zap.String("class", class))
		return Fallback()
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, fromRow(row))
	}
	if len(records) == 0 {
		return Fallback()
	}
	return records
}

func rowsFromData(data map[string]any, class string) ([]map[string]any, bool) {
	for _, v := range data {
		section, ok := v.(map[string]any)
		if !ok {
			continue
		}
		items, ok := section[class].([]any)
		if !ok {
			continue
		}
		rows := make([]map[string]any, 0, len(items))
		for _, item := range items {
			row, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			rows = append(rows, row)
		}
		return rows, true
	}
	return nil, false
}

func fromRow(row map[string]any) Record {
	r := Record{
		Name:        stringOr(row, "name", "No name"),
		Brand:       stringOr(row, "brand", "No brand"),
		Rating:      numberOr(row, "rating", 0.0),
		Ingredients: stringOr(row, "ingredients", ""),
		Description: stringOr(row, "description", ""),
		Summary:     stringOr(row, "summary", ""),
		Effects:     stringOr(row, "effects", ""),
		Reviews:     stringsOr(row, "reviews"),
		Image:       stringOr(row, "image", ""),
	}

	if additional, ok := row["_additional"].(map[string]any); ok {
		r.ID = stringOr(additional, "id", "")
		r.Distance = round2(numberOr(additional, "distance", 0.0))
	}
	return r
}

func stringOr(row map[string]any, key, fallback string) string {
	if s, ok := row[key].(string); ok {
		return s
	}
	return fallback
}

func numberOr(row map[string]any, key string, fallback float64) float64 {
	if n, ok := row[key].(float64); ok {
		return n
	}
	return fallback
}

func stringsOr(row map[string]any, key string) []string {
	items, ok := row[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
