// Command signmt translates text into sign-language video via the sign.mt API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZaguanLabs/gosign"
	"github.com/ZaguanLabs/gosign/cache"
	"github.com/ZaguanLabs/gosign/gloss"
	"github.com/ZaguanLabs/gosign/webpage"
	"github.com/joho/godotenv"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = gosign.Version
	commit    = gosign.GitCommit
	buildDate = gosign.BuildDate
)

func main() {
	// Best effort; missing .env is fine
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if advice := gosign.Advice(err); advice != err.Error() && advice != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", advice)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("signmt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	lang := fs.String("lang", "ase", "Target sign language code (e.g., ase, bfi, gsg)")
	style := fs.String("style", "realistic", "Avatar style: realistic, cartoon, minimal")
	quality := fs.String("quality", "", "Video quality preset: low, standard, high")
	apiKey := fs.String("api-key", "", "sign.mt API key (default: SIGN_MT_API_KEY env)")
	baseURL := fs.String("base-url", "", "API endpoint (default: SIGN_MT_BASE_URL env, then production)")
	staging := fs.Bool("staging", false, "Use the staging API endpoint")
	timeoutSec := fs.Int("timeout", 30, "Request timeout in seconds")
	cacheSize := fs.Int("cache-size", cache.DefaultLRUCapacity, "Result cache capacity (0 to disable)")
	cacheFile := fs.String("cache-file", "", "Warm-start the cache from a JSON export and save it back on exit")
	imagePath := fs.String("image", "", "Recognize signed content in an image file instead of translating text")
	threshold := fs.Float64("threshold", 0.5, "Minimum recognition confidence (with -image)")
	pageMode := fs.Bool("page", false, "Treat input as an HTML page: translate its text and annotate it")
	glossMode := fs.Bool("gloss", false, "Print a gloss-notation preview via OpenAI instead of rendering video")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	showVersion := fs.Bool("version", false, "Show version")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	jsonOutput := fs.Bool("json", false, "Output result as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", gosign.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	// Handle -o alias for --output
	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	if !gosign.IsSupported(*lang) {
		fmt.Fprintf(stderr, "warning: unknown sign language %q, passing through\n", *lang)
	}

	var out io.Writer = stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	// Gloss preview needs no sign.mt client
	if *glossMode {
		input, _, err := readInput(fs)
		if err != nil {
			return err
		}
		return runGloss(input, *lang, out, stderr, *quiet, *jsonOutput)
	}

	client, resultCache, err := buildClient(*apiKey, *baseURL, *staging, *timeoutSec, *cacheSize, *quality)
	if err != nil {
		return err
	}

	if *cacheFile != "" && resultCache != nil {
		loadCacheFile(resultCache, *cacheFile, stderr, *quiet)
		defer saveCacheFile(resultCache, *cacheFile, *lang, stderr, *quiet)
	}

	if *imagePath != "" {
		return runSignToText(client, *imagePath, *lang, *threshold, out, stderr, *quiet, *jsonOutput)
	}

	input, inputName, err := readInput(fs)
	if err != nil {
		return err
	}

	if *pageMode {
		return runPage(client, input, inputName, *lang, gosign.AvatarStyle(*style), out, stderr, *quiet, *jsonOutput)
	}

	return runTextToSign(client, input, *lang, gosign.AvatarStyle(*style), out, stderr, *quiet, *jsonOutput)
}

// buildClient constructs the API client from flags and environment.
// An explicit --base-url wins over --staging, which wins over the
// SIGN_MT_BASE_URL env var.
func buildClient(apiKey, baseURL string, staging bool, timeoutSec, cacheSize int, quality string) (*gosign.Client, gosign.ResultCache, error) {
	key := apiKey
	if key == "" {
		key = os.Getenv("SIGN_MT_API_KEY")
	}
	if key == "" {
		return nil, nil, fmt.Errorf("sign.mt API key required (--api-key or SIGN_MT_API_KEY env)")
	}

	url := baseURL
	if url == "" && staging {
		url = gosign.StagingBaseURL
	}
	if url == "" {
		url = os.Getenv("SIGN_MT_BASE_URL")
	}

	opts := []gosign.ClientOption{}

	var resultCache gosign.ResultCache
	if cacheSize > 0 {
		resultCache = cache.NewLRUCache(cacheSize)
		opts = append(opts, gosign.WithCache(resultCache))
	}

	if quality != "" {
		opts = append(opts, gosign.WithQuality(quality))
	}

	client, err := gosign.NewClient(gosign.ClientConfig{
		APIKey:  key,
		BaseURL: url,
		Timeout: time.Duration(timeoutSec) * time.Second,
	}, opts...)
	if err != nil {
		return nil, nil, err
	}

	return client, resultCache, nil
}

// readInput reads text from positional args or stdin.
func readInput(fs *flag.FlagSet) (string, string, error) {
	if fs.NArg() > 0 {
		// A single readable file argument is treated as a file
		if fs.NArg() == 1 {
			if data, err := os.ReadFile(fs.Arg(0)); err == nil { // #nosec G304 - CLI tool reads user-specified files
				return string(data), filepath.Base(fs.Arg(0)), nil
			}
		}
		return strings.Join(fs.Args(), " "), "args", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "stdin", nil
}

func runTextToSign(client *gosign.Client, input, lang string, style gosign.AvatarStyle, out, stderr io.Writer, quiet, jsonOut bool) error {
	if !quiet {
		fmt.Fprintf(stderr, "Translating to %s...\n", gosign.GetSignLanguageName(lang))
	}

	start := time.Now()
	result, err := client.TextToSign(context.Background(), gosign.TextToSignRequest{
		Text:           input,
		TargetLanguage: lang,
		AvatarStyle:    style,
	})
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	elapsed := time.Since(start)

	if jsonOut {
		return writeJSON(out, map[string]interface{}{
			"video_url":  result.VideoURL,
			"cached":     result.Cached,
			"elapsed_ms": elapsed.Milliseconds(),
		})
	}

	fmt.Fprintln(out, result.VideoURL)

	if !quiet {
		fmt.Fprintf(stderr, "Done in %v", elapsed.Round(time.Millisecond))
		if result.Cached {
			fmt.Fprintf(stderr, " (cached)")
		}
		fmt.Fprintln(stderr)
	}

	return nil
}

func runSignToText(client *gosign.Client, imagePath, lang string, threshold float64, out, stderr io.Writer, quiet, jsonOut bool) error {
	data, err := os.ReadFile(imagePath) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	if !quiet {
		fmt.Fprintf(stderr, "Recognizing %s content in %s...\n",
			gosign.GetSignLanguageName(lang), filepath.Base(imagePath))
	}

	result, err := client.SignToText(context.Background(), gosign.SignToTextRequest{
		ImageData:           data,
		SignLanguage:        lang,
		ConfidenceThreshold: threshold,
	})
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	if jsonOut {
		return writeJSON(out, map[string]interface{}{
			"text":       result.Text,
			"confidence": result.Confidence,
		})
	}

	fmt.Fprintln(out, result.Text)
	if !quiet {
		fmt.Fprintf(stderr, "Confidence: %.2f\n", result.Confidence)
	}

	return nil
}

func runPage(client *gosign.Client, input, inputName, lang string, style gosign.AvatarStyle, out, stderr io.Writer, quiet, jsonOut bool) error {
	extractor := webpage.NewExtractor()

	captions, err := extractor.Extract(input)
	if err != nil {
		return fmt.Errorf("extracting page text: %w", err)
	}

	if !quiet {
		fmt.Fprintf(stderr, "Translating %d captions from %s to %s...\n",
			len(captions), inputName, gosign.GetSignLanguageName(lang))
	}

	texts := make([]string, len(captions))
	for i, c := range captions {
		texts[i] = c.Text
	}

	items := client.TextToSignBatch(context.Background(), texts, lang, style)

	videos := make(map[string]string)
	cached := 0
	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			if !quiet {
				fmt.Fprintf(stderr, "  skipping %q: %v\n", truncate(item.Text, 40), item.Err)
			}
			continue
		}
		videos[item.Text] = item.Result.VideoURL
		if item.Result.Cached {
			cached++
		}
	}

	annotated, count, err := extractor.Annotate(input, videos)
	if err != nil {
		return fmt.Errorf("annotating page: %w", err)
	}

	if jsonOut {
		return writeJSON(out, map[string]interface{}{
			"content":    annotated,
			"captions":   len(captions),
			"annotated":  count,
			"from_cache": cached,
			"failed":     failed,
		})
	}

	fmt.Fprint(out, annotated)

	if !quiet {
		fmt.Fprintf(stderr, "\nAnnotated %d of %d captions (%d from cache, %d failed)\n",
			count, len(captions), cached, failed)
	}

	return nil
}

func runGloss(input, lang string, out, stderr io.Writer, quiet, jsonOut bool) error {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return fmt.Errorf("gloss preview requires OPENAI_API_KEY env")
	}

	glosser := gloss.NewOpenAIGlosser(gloss.OpenAIConfig{APIKey: key})

	if !quiet {
		fmt.Fprintf(stderr, "Glossing for %s...\n", gosign.GetSignLanguageName(lang))
	}

	glosses, err := glosser.Gloss(context.Background(), gloss.GlossRequest{
		Texts:        []string{input},
		SignLanguage: lang,
	})
	if err != nil {
		return fmt.Errorf("glossing failed: %w", err)
	}

	if jsonOut {
		return writeJSON(out, map[string]interface{}{"glosses": glosses})
	}

	for _, g := range glosses {
		fmt.Fprintln(out, g)
	}

	return nil
}

// loadCacheFile warm-starts the cache from a previous export.
func loadCacheFile(resultCache gosign.ResultCache, path string, stderr io.Writer, quiet bool) {
	if _, err := os.Stat(path); err != nil {
		return // Nothing to load yet
	}

	importer := cache.NewImporter(resultCache)
	result, err := importer.ImportFromFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "warning: loading cache file: %v\n", err)
		return
	}
	if !quiet {
		fmt.Fprintf(stderr, "Loaded %d cached results from %s\n", result.Imported, path)
	}
}

// saveCacheFile persists the cache for the next run.
func saveCacheFile(resultCache gosign.ResultCache, path, lang string, stderr io.Writer, quiet bool) {
	exporter := cache.NewExporter(resultCache)
	if err := exporter.ExportToFile(path, map[string]string{"lang": lang}); err != nil {
		fmt.Fprintf(stderr, "warning: saving cache file: %v\n", err)
		return
	}
	if !quiet {
		fmt.Fprintf(stderr, "Saved cache to %s\n", path)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
