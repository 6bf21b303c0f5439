package gosign

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
)

func TestParallelCacheLookup(t *testing.T) {
	cache := newMemCache()
	cache.Set(CacheKey(HashText("Hello"), "ase", StyleRealistic), "https://x/hello.mp4")
	cache.Set(CacheKey(HashText("World"), "ase", StyleRealistic), "https://x/world.mp4")

	texts := []string{"Hello", "World", "Goodbye", "Hello", "Goodbye"}

	hits, misses := ParallelCacheLookup(cache, texts, "ase", StyleRealistic)

	if len(hits) != 2 {
		t.Errorf("Expected 2 hits, got %d", len(hits))
	}
	if hits["Hello"] != "https://x/hello.mp4" {
		t.Errorf("Unexpected hit for Hello: %q", hits["Hello"])
	}

	// Misses are deduplicated
	if len(misses) != 1 || misses[0] != "Goodbye" {
		t.Errorf("Expected misses [Goodbye], got %v", misses)
	}
}

func TestParallelCacheLookup_NilCache(t *testing.T) {
	texts := []string{"a", "b", "a"}
	hits, misses := ParallelCacheLookup(nil, texts, "ase", StyleRealistic)

	if len(hits) != 0 {
		t.Errorf("Expected no hits without a cache, got %d", len(hits))
	}
	if len(misses) != 2 {
		t.Errorf("Expected deduplicated misses, got %v", misses)
	}
}

func TestTextToSignBatch(t *testing.T) {
	var calls int32
	cache := newMemCache()
	cache.Set(CacheKey(HashText("Hello"), "ase", StyleRealistic), "https://x/hello.mp4")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]string{
			"video_url": "https://x/" + body["text"].(string) + ".mp4",
		})
	}, WithCache(cache))

	texts := []string{"Hello", "World", "World", ""}
	items := client.TextToSignBatch(context.Background(), texts, "ase", StyleRealistic)

	if len(items) != len(texts) {
		t.Fatalf("Expected %d items, got %d", len(texts), len(items))
	}

	if items[0].Err != nil || !items[0].Result.Cached {
		t.Errorf("Expected first item from cache, got %+v", items[0])
	}

	if items[1].Err != nil || items[1].Result.VideoURL != "https://x/World.mp4" {
		t.Errorf("Unexpected second item: %+v", items[1])
	}

	// Duplicate text shares the fetched result
	if items[2].Err != nil || items[2].Result.VideoURL != items[1].Result.VideoURL {
		t.Errorf("Expected duplicate to reuse result, got %+v", items[2])
	}

	// Empty text fails validation per item, not the whole batch
	if items[3].Err == nil {
		t.Error("Expected validation error for empty text")
	}

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected 1 network call for the deduplicated miss, got %d", n)
	}
}
