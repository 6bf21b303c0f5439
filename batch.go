package gosign

import (
	"context"
	"sync"
)

// BatchItem is the per-text outcome of a batch translation.
type BatchItem struct {
	Text   string
	Result *TextToSignResult
	Err    error
}

// ParallelCacheLookup checks the cache for every text in parallel.
// Returns a map of text to cached video URL, and the deduplicated texts
// that missed, preserving input order.
func ParallelCacheLookup(cache ResultCache, texts []string, targetLanguage string, style AvatarStyle) (map[string]string, []string) {
	if cache == nil || len(texts) == 0 {
		return make(map[string]string), dedupe(texts)
	}

	type lookupResult struct {
		text  string
		value string
		found bool
	}

	unique := dedupe(texts)
	results := make(chan lookupResult, len(unique))
	var wg sync.WaitGroup

	for _, text := range unique {
		wg.Add(1)
		go func(t string) {
			defer wg.Done()
			key := CacheKey(HashText(t), targetLanguage, style)
			if val, ok := cache.Get(key); ok {
				results <- lookupResult{text: t, value: val, found: true}
			} else {
				results <- lookupResult{text: t, found: false}
			}
		}(text)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	hits := make(map[string]string)
	missed := make(map[string]bool)
	for result := range results {
		if result.found {
			hits[result.text] = result.value
		} else {
			missed[result.text] = true
		}
	}

	// Preserve input order for misses
	var misses []string
	for _, text := range unique {
		if missed[text] {
			misses = append(misses, text)
		}
	}

	return hits, misses
}

// TextToSignBatch translates several texts into sign-language videos.
// Cache lookups run in parallel; misses are fetched one at a time so a
// single batch cannot stampede the API. The returned slice matches the
// input order, with per-item errors.
func (c *Client) TextToSignBatch(ctx context.Context, texts []string, targetLanguage string, style AvatarStyle) []BatchItem {
	if style == "" {
		style = StyleRealistic
	}

	hits, misses := ParallelCacheLookup(c.cache, texts, targetLanguage, style)

	fetched := make(map[string]BatchItem, len(misses))
	for _, text := range misses {
		result, err := c.TextToSign(ctx, TextToSignRequest{
			Text:           text,
			TargetLanguage: targetLanguage,
			AvatarStyle:    style,
		})
		fetched[text] = BatchItem{Text: text, Result: result, Err: err}
	}

	items := make([]BatchItem, len(texts))
	for i, text := range texts {
		if url, ok := hits[text]; ok {
			items[i] = BatchItem{
				Text:   text,
				Result: &TextToSignResult{VideoURL: url, Cached: true},
			}
			continue
		}
		item := fetched[text]
		item.Text = text
		items[i] = item
	}

	return items
}

// dedupe removes duplicate texts, preserving first-seen order.
func dedupe(texts []string) []string {
	seen := make(map[string]bool, len(texts))
	var unique []string
	for _, text := range texts {
		if !seen[text] {
			seen[text] = true
			unique = append(unique, text)
		}
	}
	return unique
}
