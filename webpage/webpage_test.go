package webpage

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Clinic</title></head>
<body>
    <h1>Welcome to the clinic</h1>
    <p>Please take a seat.</p>
    <p data-no-sign>Internal note, do not sign.</p>
    <script>console.log("ignored");</script>
    <code>fmt.Println("ignored")</code>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor()

	captions, err := e.Extract(samplePage)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	texts := make(map[string]bool)
	for _, c := range captions {
		texts[c.Text] = true
	}

	for _, want := range []string{"Clinic", "Welcome to the clinic", "Please take a seat."} {
		if !texts[want] {
			t.Errorf("Expected caption %q, got %v", want, texts)
		}
	}

	if texts[`console.log("ignored");`] {
		t.Error("Script content should be ignored")
	}
	if texts["Internal note, do not sign."] {
		t.Error("data-no-sign content should be ignored")
	}
}

func TestExtractor_ExtractDeduplicates(t *testing.T) {
	e := NewExtractor()

	captions, err := e.Extract(`<p>Hello</p><p>Hello</p><p>World</p>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(captions) != 2 {
		t.Errorf("Expected 2 unique captions, got %d", len(captions))
	}
}

func TestExtractor_ExtractContext(t *testing.T) {
	e := NewExtractor()

	captions, err := e.Extract(`<main><section><p>Hello</p></section></main>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var hello *Caption
	for i := range captions {
		if captions[i].Text == "Hello" {
			hello = &captions[i]
		}
	}
	if hello == nil {
		t.Fatal("Expected to find 'Hello'")
	}

	if hello.Parent != "p" {
		t.Errorf("Expected parent 'p', got %q", hello.Parent)
	}
	if !strings.Contains(hello.Context, "section") {
		t.Errorf("Expected context to include ancestors, got %q", hello.Context)
	}
}

func TestExtractor_CustomIgnoredTags(t *testing.T) {
	e := NewExtractorWithIgnoredTags([]string{"nav"})

	captions, err := e.Extract(`<nav>Menu</nav><p>Content</p>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	for _, c := range captions {
		if c.Text == "Menu" {
			t.Error("Custom ignored tag content should be skipped")
		}
	}
}

func TestExtractor_Annotate(t *testing.T) {
	e := NewExtractor()

	videos := map[string]string{
		"Welcome to the clinic": "https://x/welcome.mp4",
		"Please take a seat.":   "https://x/seat.mp4",
	}

	out, count, err := e.Annotate(samplePage, videos)
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 annotated elements, got %d", count)
	}
	if !strings.Contains(out, `data-sign-video="https://x/welcome.mp4"`) {
		t.Error("Expected h1 to be annotated with its video URL")
	}
	if !strings.Contains(out, `data-sign-video="https://x/seat.mp4"`) {
		t.Error("Expected p to be annotated with its video URL")
	}

	// Original text stays in place
	if !strings.Contains(out, "Welcome to the clinic") {
		t.Error("Annotation must not replace the text")
	}
}

func TestExtractor_AnnotateSkipsExcluded(t *testing.T) {
	e := NewExtractor()

	out, count, err := e.Annotate(samplePage, map[string]string{
		"Internal note, do not sign.": "https://x/no.mp4",
	})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	if count != 0 {
		t.Errorf("Expected no annotations, got %d", count)
	}
	if strings.Contains(out, "https://x/no.mp4") {
		t.Error("data-no-sign elements must not be annotated")
	}
}

func TestExtractor_AnnotateReplacesExisting(t *testing.T) {
	e := NewExtractor()

	page := `<p data-sign-video="https://x/old.mp4">Hello</p>`
	out, count, err := e.Annotate(page, map[string]string{"Hello": "https://x/new.mp4"})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected 1 annotation, got %d", count)
	}
	if strings.Contains(out, "old.mp4") || !strings.Contains(out, "new.mp4") {
		t.Errorf("Expected attribute to be replaced, got: %s", out)
	}
}
