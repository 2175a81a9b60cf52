package cache

import domcache "github.com/kailas-cloud/healthsearch/internal/domain/cache"

func entryFromRow(row map[string]any) domcache.Entry {
	return domcache.Entry{
		NaturalQuery: stringAt(row, "naturalQuery"),
		GraphQuery:   stringAt(row, "graphQuery"),
		Products:     stringAt(row, "products"),
		Summary:      stringAt(row, "summary"),
	}
}

func distanceFromRow(row map[string]any) (float64, bool) {
	additional, ok := row["_additional"].(map[string]any)
	if !ok {
		return 0, false
	}
	d, ok := additional["distance"].(float64)
	return d, ok
}

func stringAt(row map[string]any, key string) string {
	s, _ := row[key].(string)
	return s
}
