package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "text")
	writeFile(t, dir, "a.pdf", "%PDF-1.4")
	writeFile(t, dir, "c.html", "<html></html>")
	writeFile(t, dir, "notes.md", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := Collect(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("collected %d files, want 3: %v", len(paths), paths)
	}
	want := []string{"a.pdf", "b.txt", "c.html"}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, filepath.Base(p), want[i])
		}
	}
}

func TestCollectMissingDir(t *testing.T) {
	if _, err := Collect(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Collect on a missing dir did not error")
	}
}

func TestLoadTextSinglePage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "line one\nline two")

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "doc.txt" {
		t.Errorf("Name = %q", doc.Name)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}
	if doc.Pages[0].Number != 1 {
		t.Errorf("page number = %d, want 1", doc.Pages[0].Number)
	}
}

func TestLoadTextFormFeedPages(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "page one\fpage two\fpage three")

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(doc.Pages))
	}
	for i, p := range doc.Pages {
		if p.Number != i+1 {
			t.Errorf("page %d numbered %d", i, p.Number)
		}
	}
}

func TestLoadHTML(t *testing.T) {
	html := `<html><head><title>City Guide</title></head><body>
<article>
<h1>Top Attractions</h1>
<p>The old town is the heart of the city and rewards slow exploration on foot.</p>
<ul>
<li>Grand Hotel Museum, open daily from 10:00</li>
<li>Harbour walking tour, €15 per person</li>
</ul>
<p>Most sights are within walking distance of the central square and its cafes.</p>
</article>
</body></html>`
	dir := t.TempDir()
	path := writeFile(t, dir, "guide.html", html)

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}
	text := doc.Pages[0].Text
	if !strings.Contains(text, "- Grand Hotel Museum") {
		t.Errorf("list items not bullet-prefixed:\n%s", text)
	}
	if !strings.Contains(text, "Top Attractions") {
		t.Errorf("heading missing:\n%s", text)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.docx", "content")
	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load(.docx) did not error")
	}
}
