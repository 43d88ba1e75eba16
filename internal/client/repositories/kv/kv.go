package kv

import (
	"database/sql"
	"fmt"
	"strings"
)

// likePattern escapes LIKE metacharacters in prefix and appends the
// wildcard, so keys containing '%' or '_' match literally.
func likePattern(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "%"
}

func collectPairs(rows *sql.Rows) (map[string][]byte, error) {
	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan local_state row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate local_state rows: %w", err)
	}
	return result, nil
}
