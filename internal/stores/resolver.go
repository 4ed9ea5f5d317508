package stores

import (
	"regexp"
	"strings"

	"surveyetl/pkg/contracts/domain"
)

// Resolver maps a free-text store label from a report row to a store ID.
// Implementations are best-effort: a false second return value means the
// label is unmapped, which callers count and report rather than fail on.
type Resolver interface {
	Resolve(label string) (int64, bool)
}

// digitRunPattern matches runs of digits inside a store label, e.g. the
// "01234" in "QDOBA #01234 - Main St".
var digitRunPattern = regexp.MustCompile(`\d+`)

// TableResolver resolves labels against an in-memory snapshot of the store
// reference table. Build one per ingest from Registry.ListStores; it holds
// no connection and is safe for concurrent reads.
type TableResolver struct {
	byNumber map[string]int64
	stores   []domain.Store
}

// NewTableResolver indexes the given stores for resolution. Store numbers
// are indexed both as-is and with leading zeros stripped.
func NewTableResolver(storeList []domain.Store) *TableResolver {
	r := &TableResolver{
		byNumber: make(map[string]int64, len(storeList)*2),
		stores:   storeList,
	}
	for _, s := range storeList {
		r.byNumber[s.StoreNumber] = s.ID
		if stripped := strings.TrimLeft(s.StoreNumber, "0"); stripped != "" && stripped != s.StoreNumber {
			r.byNumber[stripped] = s.ID
		}
	}
	return r
}

// Resolve tries, in order:
//
//  1. the rightmost 4 digits of each digit run in the label, against the
//     store-number index
//  2. the same digits with leading zeros stripped
//  3. a case-insensitive substring match of each store name in the label
//
// The first hit wins. Labels with no digit run fall straight through to the
// name match.
func (r *TableResolver) Resolve(label string) (int64, bool) {
	for _, run := range digitRunPattern.FindAllString(label, -1) {
		number := run
		if len(number) > 4 {
			number = number[len(number)-4:]
		}
		if id, ok := r.byNumber[number]; ok {
			return id, true
		}
		if stripped := strings.TrimLeft(number, "0"); stripped != "" {
			if id, ok := r.byNumber[stripped]; ok {
				return id, true
			}
		}
	}

	lower := strings.ToLower(label)
	for _, s := range r.stores {
		if s.Name != "" && strings.Contains(lower, strings.ToLower(s.Name)) {
			return s.ID, true
		}
	}
	return 0, false
}
