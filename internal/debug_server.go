// Package internal hosts the operator-facing store inspector: a tiny HTML
// view over the raw badger keyspace, served on a separate debug port.
package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Key      string
	Type     string
	ID       string
	DateTime string
	Detail   string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

func StartDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = ReviewMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "review:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		// Listens on all interfaces so the inspector is reachable over the network
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

// ReviewMapper decodes record keys as stored reviews and index keys from their
// timestamp segment. Anything else is shown raw.
func ReviewMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:      key,
		Type:     "RAW",
		ID:       "--------",
		DateTime: "--:--:--",
		Detail:   "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	switch {
	case strings.HasPrefix(key, "review_ts:"):
		row.Type = "INDEX"
		parts := strings.Split(key, ":")
		if len(parts) == 3 {
			if tsNano, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
				row.DateTime = time.Unix(0, tsNano).Format("15:04:05")
			}
			row.ID = shortID(parts[2])
		}
	case strings.HasPrefix(key, "review:"):
		var review struct {
			ID       string    `json:"id"`
			Title    string    `json:"title"`
			Content  string    `json:"content"`
			DateTime time.Time `json:"dateTime"`
		}
		if err := json.Unmarshal(val, &review); err != nil {
			return row
		}
		row.Type = "REVIEW"
		row.ID = shortID(review.ID)
		row.DateTime = review.DateTime.Format("15:04:05")
		row.Detail = review.Title + " | " + review.Content
	}
	return row
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
