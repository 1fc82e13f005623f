// Package dedup derives the composite key that identifies a sales line across
// uploads.
package dedup

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"SalesIngest/internal/sales"
)

const sep = "|"

// Key is lower(trim(document))|YYYY-MM-DD|lower(trim(product))|quantity(2dp).
func Key(tx sales.Transaction) string {
	doc := ""
	if tx.DocumentRef != nil {
		doc = *tx.DocumentRef
	}
	return KeyOf(doc, tx.Date, tx.ProductName, tx.Quantity)
}

// KeyOf builds the key from stored columns, so keys of persisted rows can be
// recomputed without a key column.
func KeyOf(documentRef string, date time.Time, product string, qty decimal.Decimal) string {
	var b strings.Builder
	b.WriteString(normalize(documentRef))
	b.WriteString(sep)
	b.WriteString(date.Format("2006-01-02"))
	b.WriteString(sep)
	b.WriteString(normalize(product))
	b.WriteString(sep)
	b.WriteString(qty.StringFixed(2))
	return b.String()
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Set is a read-only snapshot of keys already persisted for a scope.
type Set map[string]struct{}

func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Partition splits parsed transactions by key membership. Only the first
// line with a given key is classified; later ones land in repeats, so one
// upload never inserts the same line twice and a re-upload reports exactly
// the lines it inserted before as present.
func Partition(txs []sales.Transaction, existing Set) (novel, present, repeats []sales.Transaction) {
	seen := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		k := Key(tx)
		if hasKey(seen, k) {
			repeats = append(repeats, tx)
			continue
		}
		seen[k] = struct{}{}
		if existing.Has(k) {
			present = append(present, tx)
		} else {
			novel = append(novel, tx)
		}
	}
	return novel, present, repeats
}

func hasKey(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}
