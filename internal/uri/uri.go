// Package uri opens input and output locations that may be local files or Google Cloud Storage objects (gs://bucket/path).
package uri

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// clientReader closes the storage client that opened the reader along with the reader.
type clientReader struct {
	io.ReadCloser
	client io.Closer
}

func (r clientReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// clientWriter closes the storage client after the object is committed.
type clientWriter struct {
	io.WriteCloser
	client io.Closer
}

func (w clientWriter) Close() error {
	err := w.WriteCloser.Close()
	if cerr := w.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open opens a local file or GS object for reading.
func Open(ctx context.Context, f string) (io.ReadCloser, error) {
	u, err := url.Parse(f)
	if err != nil {
		return nil, err
	}
	var r io.ReadCloser
	switch u.Scheme {
	case "gs":
		gsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		obj := gsClient.Bucket(u.Host).Object(objectPath(u))
		gsr, err := obj.NewReader(ctx)
		if err != nil {
			gsClient.Close()
			return nil, err
		}
		r = clientReader{ReadCloser: gsr, client: gsClient}

	case "file":
		fallthrough
	case "":
		r, err = os.Open(u.Path)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unable to determine how to open '%s'", f)
	}

	return r, nil
}

// ReadAll slurps a local file or GS object.
func ReadAll(ctx context.Context, f string) ([]byte, error) {
	r, err := Open(ctx, f)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Create opens a local file or GS object for writing.
// GS objects are only written when the returned writer is closed.
func Create(ctx context.Context, f string) (io.WriteCloser, error) {
	u, err := url.Parse(f)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch u.Scheme {
	case "gs":
		gsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		obj := gsClient.Bucket(u.Host).Object(objectPath(u))
		w = clientWriter{WriteCloser: obj.NewWriter(ctx), client: gsClient}

	case "file":
		fallthrough
	case "":
		if dir := filepath.Dir(u.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		w, err = os.Create(u.Path)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unable to determine how to open '%s'", f)
	}

	return w, nil
}

// Exists reports whether a local file or GS object exists.
func Exists(ctx context.Context, f string) (bool, error) {
	u, err := url.Parse(f)
	if err != nil {
		return false, err
	}
	switch u.Scheme {
	case "gs":
		gsClient, err := storage.NewClient(ctx)
		if err != nil {
			return false, err
		}
		defer gsClient.Close()
		_, err = gsClient.Bucket(u.Host).Object(objectPath(u)).Attrs(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return err == nil, err

	case "file":
		fallthrough
	case "":
		_, err := os.Stat(u.Path)
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	}
	return false, fmt.Errorf("unable to determine how to open '%s'", f)
}

// List returns the locations of every file directly inside a local directory or GS prefix whose name ends in one of the given extensions.
// Results are sorted.
func List(ctx context.Context, dir string, extensions ...string) ([]string, error) {
	u, err := url.Parse(dir)
	if err != nil {
		return nil, err
	}
	match := func(name string) bool {
		if len(extensions) == 0 {
			return true
		}
		ext := strings.ToLower(path.Ext(name))
		for _, e := range extensions {
			if ext == strings.ToLower(e) {
				return true
			}
		}
		return false
	}

	var out []string
	switch u.Scheme {
	case "gs":
		gsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		defer gsClient.Close()
		prefix := objectPath(u)
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		it := gsClient.Bucket(u.Host).Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})
		for {
			attrs, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, err
			}
			if attrs.Name == "" || !match(attrs.Name) {
				continue
			}
			out = append(out, "gs://"+u.Host+"/"+attrs.Name)
		}

	case "file":
		fallthrough
	case "":
		entries, err := os.ReadDir(u.Path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !match(e.Name()) {
				continue
			}
			out = append(out, filepath.Join(u.Path, e.Name()))
		}

	default:
		return nil, fmt.Errorf("unable to determine how to list '%s'", dir)
	}
	sort.Strings(out)
	return out, nil
}

// Join appends path elements to a local directory or GS prefix.
func Join(base string, elem ...string) string {
	if strings.HasPrefix(base, "gs://") {
		return strings.TrimSuffix(base, "/") + "/" + path.Join(elem...)
	}
	return filepath.Join(append([]string{base}, elem...)...)
}

// Stem returns the file name without directory or extension.
func Stem(f string) string {
	base := path.Base(filepath.ToSlash(f))
	return strings.TrimSuffix(base, path.Ext(base))
}

// URL path has leading slash, but GS expects path relative to bucket.
func objectPath(u *url.URL) string {
	return strings.TrimPrefix(u.Path, "/")
}
