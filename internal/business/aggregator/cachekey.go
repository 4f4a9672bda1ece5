package aggregator

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/aquarion/docket-sub000/internal/model"
)

// cacheKey derives a stable key from everything that can change the
// output: the exact set of sources, the window, the override table and
// the theme.
func cacheKey(sources []*model.Source, overrides []*model.MergeOverride, req Request) string {
	ids := make([]string, len(sources))
	for i, s := range sources {
		ids[i] = s.ID
	}
	sort.Strings(ids)

	keys := make([]string, len(overrides))
	for i, o := range overrides {
		keys[i] = o.Key + "=" + o.Color
	}
	sort.Strings(keys)

	h := sha1.New()
	for _, id := range ids {
		fmt.Fprintf(h, "%s;", id)
	}
	fmt.Fprintf(h, "|%s|%s|", req.From.UTC().Format(identityTimeFormat), req.To.UTC().Format(identityTimeFormat))
	for _, k := range keys {
		fmt.Fprintf(h, "%s;", k)
	}
	fmt.Fprintf(h, "|%s", req.Theme)

	return hex.EncodeToString(h.Sum(nil))
}
