// ABOUTME: UUID prefix resolution shared by all entity lookups.
// ABOUTME: Full 36-char UUIDs pass through; prefixes must match exactly one row.
package storage

import (
	"fmt"
	"strings"
)

// resolveID finds the full ID from a prefix in the given table/column.
// The table and column names are always package-internal constants.
func (d *DB) resolveID(table, column, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE ? || '%%'`, column, table, column)
	rows, err := d.db.Query(query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s ID: %w", table, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}

	if len(matches) == 0 {
		return "", ErrNotFound
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}
