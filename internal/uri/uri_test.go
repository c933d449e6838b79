package uri

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f := filepath.Join(dir, "sub", "a.csv")

	exists, err := Exists(ctx, f)
	if err != nil || exists {
		t.Fatalf("expected missing file, got %v (%v)", exists, err)
	}

	w, err := Create(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "hello"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := ReadAll(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Errorf("expected hello, got %s", b)
	}

	exists, err = Exists(ctx, "file://"+f)
	if err != nil || !exists {
		t.Errorf("expected file to exist, got %v (%v)", exists, err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.xlsx", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "d.csv"), 0o755); err != nil {
		t.Fatal(err)
	}
	files, err := List(context.Background(), dir, ".csv", ".XLSX")
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.csv")}
	if len(files) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, files)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected[i], files[i])
		}
	}
}

func TestJoinAndStem(t *testing.T) {
	tests := []struct {
		got, expected string
	}{
		{Join("gs://bucket/tables/", "NE.csv"), "gs://bucket/tables/NE.csv"},
		{Join("gs://bucket", "a", "b.csv"), "gs://bucket/a/b.csv"},
		{Join("tables", "NE.csv"), filepath.Join("tables", "NE.csv")},
		{Stem("gs://bucket/tables/NE.csv"), "NE"},
		{Stem("tables/KC.xlsx"), "KC"},
	}
	for _, test := range tests {
		if test.got != test.expected {
			t.Errorf("expected %v, got %v", test.expected, test.got)
		}
	}
}

func TestUnknownScheme(t *testing.T) {
	if _, err := Open(context.Background(), "ftp://host/file"); err == nil {
		t.Errorf("expected error for unknown scheme")
	}
}

type closer struct {
	closed int
	err    error
}

func (c *closer) Close() error {
	c.closed++
	return c.err
}

type readCloser struct {
	io.Reader
	closer
}

type writeCloser struct {
	io.Writer
	closer
}

func TestClientClosedWithStream(t *testing.T) {
	errCommit := errors.New("commit failed")
	errClient := errors.New("client close failed")
	tests := []struct {
		name                 string
		streamErr, clientErr error
		expected             error
	}{
		{"clean", nil, nil, nil},
		{"stream error wins", errCommit, errClient, errCommit},
		{"client error reported", nil, errClient, errClient},
	}
	for _, test := range tests {
		client := &closer{err: test.clientErr}
		rc := &readCloser{closer: closer{err: test.streamErr}}
		if err := (clientReader{ReadCloser: rc, client: client}).Close(); err != test.expected {
			t.Errorf("%s: reader: expected %v, got %v", test.name, test.expected, err)
		}
		if rc.closed != 1 || client.closed != 1 {
			t.Errorf("%s: reader: expected one close each, got stream %d and client %d", test.name, rc.closed, client.closed)
		}

		client = &closer{err: test.clientErr}
		wc := &writeCloser{closer: closer{err: test.streamErr}}
		if err := (clientWriter{WriteCloser: wc, client: client}).Close(); err != test.expected {
			t.Errorf("%s: writer: expected %v, got %v", test.name, test.expected, err)
		}
		if wc.closed != 1 || client.closed != 1 {
			t.Errorf("%s: writer: expected one close each, got stream %d and client %d", test.name, wc.closed, client.closed)
		}
	}
}
