package site

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/robworks/opsdocs/internal/content"
)

// ContentVersion fingerprints a page set: FNV-1a over the sorted
// (route, raw source) pairs. Mirrors poll it to detect content changes
// without transferring the whole bundle.
func ContentVersion(pages []*content.Page) string {
	sorted := make([]*content.Page, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Route < sorted[j].Route })

	h := fnv.New64a()
	for _, p := range sorted {
		h.Write([]byte(p.Route))
		h.Write([]byte{0})
		h.Write(p.Raw)
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
