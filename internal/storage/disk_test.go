package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskSaveAndRemove(t *testing.T) {
	d := NewDisk(t.TempDir())

	name, err := d.Save("photos", strings.NewReader("payload"), "deck стол.JPG")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("expected lowercased extension, got %q", name)
	}

	b, err := os.ReadFile(filepath.Join(d.Dir, "photos", name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "payload" {
		t.Fatalf("unexpected content %q", b)
	}

	if err := d.Remove("photos", name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := d.Remove("photos", name); err != nil {
		t.Fatalf("second remove must be a no-op, got %v", err)
	}
}

func TestDiskSave_NoDirConfigured(t *testing.T) {
	d := &Disk{}
	if _, err := d.Save("photos", strings.NewReader("x"), "a.png"); err == nil {
		t.Fatalf("expected error without a storage dir")
	}
}

func TestPublicURL(t *testing.T) {
	d := NewDisk("uploads")

	got := d.PublicURL("http://localhost:8080/", "photos", "a b.png")
	want := "http://localhost:8080/uploads/photos/a%20b.png"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if d.PublicURL("http://x", "photos", "") != "" {
		t.Fatalf("empty filename must give empty url")
	}
}
