package symspell

import (
	"fmt"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// cacheEntry memoises one Lookup(_, _, Top) outcome: either a suggestion,
// or the fact that none exists within the requested distance.
type cacheEntry struct {
	found bool
	sug   Suggestion
}

// HotCache is an LRU memoisation layer over Lookup(_, _, Top). Eviction
// is plain LRU by monotonic access counter, not frequency-ranked, because
// a query cache has no analogue of the dictionary's frequency field to
// rank by.
//
// Entries are additionally indexed by a patricia trie the way the
// teacher's pkg/suggest/cache.go indexes its hot-word trie, but keyed on
// each query's candidate-generation prefix (the same prefixOf(fold(q))
// Lookup uses to compute deletion variants) rather than on the cache key
// itself. A query cached under the exact same prefix as a newly inserted
// term is guaranteed to intersect its deletion-variant set (both post the
// prefix's own zero-edit variant), so InvalidatePrefix uses the trie to
// find and drop those entries on insert. This is a conservative, not
// exhaustive, invalidation: two different prefixes within maxDistance of
// each other can also intersect without tripping it, so a memoised miss
// can in rare cases still be stale until it ages out by LRU. Exact-prefix
// equality is the cheap, common case worth catching without recomputing
// distances on every insert.
type HotCache struct {
	mu          sync.RWMutex
	trie        *patricia.Trie
	entries     map[string]cacheEntry
	accessTime  map[string]int64
	keyPrefix   map[string]string
	accessCount int64
	maxEntries  int
}

// NewHotCache returns a cache holding at most maxEntries memoised lookups.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		trie:       patricia.NewTrie(),
		entries:    make(map[string]cacheEntry, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		keyPrefix:  make(map[string]string, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(query string, maxDistance int) string {
	return fmt.Sprintf("%s\x1f%d", query, maxDistance)
}

// Get returns the memoised entry for (query, maxDistance), if any.
func (hc *HotCache) Get(query string, maxDistance int) (cacheEntry, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	key := cacheKey(query, maxDistance)
	e, ok := hc.entries[key]
	if ok {
		hc.accessCount++
		hc.accessTime[key] = hc.accessCount
	}
	return e, ok
}

// Put memoises entry for (query, maxDistance), evicting the least recently
// used entry first if the cache is full. prefix is the candidate-
// generation prefix the query was looked up under (idx.prefixOf(fold(q))),
// used to index the entry in the invalidation trie.
func (hc *HotCache) Put(query string, maxDistance int, prefix string, entry cacheEntry) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	key := cacheKey(query, maxDistance)
	if _, exists := hc.entries[key]; !exists && len(hc.entries) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries[key] = entry
	hc.accessCount++
	hc.accessTime[key] = hc.accessCount
	hc.keyPrefix[key] = prefix
	hc.addToBucket(prefix, key)
}

func (hc *HotCache) addToBucket(prefix, key string) {
	var bucket []string
	if item := hc.trie.Get(patricia.Prefix(prefix)); item != nil {
		bucket = item.([]string)
	}
	bucket = append(bucket, key)
	hc.trie.Insert(patricia.Prefix(prefix), bucket)
}

func (hc *HotCache) removeFromBucket(prefix, key string) {
	item := hc.trie.Get(patricia.Prefix(prefix))
	if item == nil {
		return
	}
	bucket := item.([]string)
	for i, k := range bucket {
		if k == key {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		hc.trie.Delete(patricia.Prefix(prefix))
		return
	}
	hc.trie.Insert(patricia.Prefix(prefix), bucket)
}

func (hc *HotCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = 1<<63 - 1
	for key, t := range hc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
		}
	}
	if oldestKey != "" {
		hc.removeFromBucket(hc.keyPrefix[oldestKey], oldestKey)
		delete(hc.entries, oldestKey)
		delete(hc.accessTime, oldestKey)
		delete(hc.keyPrefix, oldestKey)
	}
}

// InvalidatePrefix evicts every cached entry whose candidate-generation
// prefix is exactly prefix, the way the teacher's HotCache.Search walks
// its trie for a prefix match. It is used when a new term is inserted
// under prefix: any query memoised under the same prefix shares its
// deletion-variant set with the new term and so its cached Top result
// can no longer be trusted.
func (hc *HotCache) InvalidatePrefix(prefix string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	item := hc.trie.Get(patricia.Prefix(prefix))
	if item == nil {
		return
	}
	bucket := item.([]string)
	for _, key := range bucket {
		delete(hc.entries, key)
		delete(hc.accessTime, key)
		delete(hc.keyPrefix, key)
	}
	hc.trie.Delete(patricia.Prefix(prefix))
}

// Stats reports cache occupancy, for server/CLI diagnostics.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return map[string]int{
		"entries":    len(hc.entries),
		"maxEntries": hc.maxEntries,
	}
}

// cacheGet checks idx's hot cache (if attached) for a memoised
// Lookup(query, maxDistance, Top) outcome.
func (idx *Index) cacheGet(query string, maxDistance int) (*Suggestion, bool) {
	if idx.cache == nil {
		return nil, false
	}
	e, ok := idx.cache.Get(query, maxDistance)
	if !ok {
		return nil, false
	}
	if !e.found {
		return nil, true
	}
	s := e.sug
	return &s, true
}

// cachePut memoises a Lookup(query, maxDistance, Top) outcome under its
// candidate-generation prefix, if a hot cache is attached.
func (idx *Index) cachePut(query string, maxDistance int, prefix string, out []Suggestion) {
	if idx.cache == nil {
		return
	}
	if len(out) == 0 {
		idx.cache.Put(query, maxDistance, prefix, cacheEntry{found: false})
		return
	}
	idx.cache.Put(query, maxDistance, prefix, cacheEntry{found: true, sug: out[0]})
}

// cacheInvalidatePrefix drops every memoised Lookup(_, _, Top) result
// cached under prefix, if a hot cache is attached. Called after a new
// term is inserted under that same prefix, since the new entry is itself
// a candidate for any query sharing it.
func (idx *Index) cacheInvalidatePrefix(prefix string) {
	if idx.cache == nil {
		return
	}
	idx.cache.InvalidatePrefix(prefix)
}
