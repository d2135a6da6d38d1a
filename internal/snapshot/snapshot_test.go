package snapshot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "metadata": {"last_sync": "2024-05-01T10:00:00Z", "note_count": "3", "deleted_count": 1},
  "notes": {
    "x_b": {"id": "x-coredata://b", "title": "Beta", "body": "Beta\nsecond\u0007", "created_date": "2024-01-01T00:00:00Z", "updated_date": null},
    "x_a": {"title": "Alpha", "body": 42, "created_date": "1970-01-01T00:00:00Z", "updated_date": "2024-02-01T00:00:00Z"},
    "x_c": "not an object",
    "x_d": {"id": "unknown-id-7", "title": "Ghost"}
  }
}`

func TestDecode(t *testing.T) {
	snap, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	require.Len(t, snap.Notes, 2)
	require.Equal(t, []string{"x_c", "x_d"}, snap.Skipped)

	a := snap.Notes[0]
	require.Equal(t, "x_a", a.Key)
	require.Equal(t, "x_a", a.ID, "id falls back to key")
	require.Equal(t, "42", a.Body)
	require.Equal(t, "1970-01-01T00:00:00Z", a.CreatedDate)

	b := snap.Notes[1]
	require.Equal(t, "x-coredata://b", b.ID)
	require.Equal(t, "Beta\nsecond", b.Body, "control characters removed, newline kept")
	require.Equal(t, "", b.UpdatedDate)

	require.Equal(t, "2024-05-01T10:00:00Z", snap.Metadata.LastSync)
	require.Equal(t, 3, snap.Metadata.NoteCount)
	require.Equal(t, 1, snap.Metadata.DeletedCount)
}

func TestDecodeArrayNotes(t *testing.T) {
	snap, err := Decode(strings.NewReader(`{"notes": [null, {"title": "One"}, {"title": "Two"}]}`))
	require.NoError(t, err)
	require.Len(t, snap.Notes, 2)
	require.Equal(t, "1", snap.Notes[0].Key)
	require.Equal(t, "Two", snap.Notes[1].Title)
	require.Equal(t, []string{"0"}, snap.Skipped)
}

func TestDecodeEmpty(t *testing.T) {
	for _, in := range []string{"", "null", "{}", `{"notes": null}`} {
		snap, err := Decode(strings.NewReader(in))
		require.NoError(t, err, in)
		require.Empty(t, snap.Notes, in)
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"notes": `))
	require.Error(t, err)

	_, err = Decode(strings.NewReader(`{"notes": "nope"}`))
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	snap, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	n, err := snap.Lookup("x_b")
	require.NoError(t, err)
	require.Equal(t, "Beta", n.Title)

	_, err = snap.Lookup("x_z")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))

	src, err := Open(path, "", time.Second)
	require.NoError(t, err)
	snap, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Notes, 2)

	missing := &FileSource{Path: filepath.Join(dir, "missing.json")}
	_, err = missing.Load(context.Background())
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFileSourceStdin(t *testing.T) {
	src := &FileSource{Path: "-", Stdin: strings.NewReader(sampleDoc)}
	snap, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Notes, 2)
}

func TestOpenRequiresLocation(t *testing.T) {
	_, err := Open("  ", "", time.Second)
	require.ErrorIs(t, err, ErrNoSource)
}

func TestHTTPSource(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.URL.Query().Get("auth")
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	src, err := Open(srv.URL+"/", "secret", time.Second)
	require.NoError(t, err)
	snap, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Notes, 2)
	require.Equal(t, "/.json", gotPath)
	require.Equal(t, "secret", gotAuth)
}

func TestHTTPSourceErrors(t *testing.T) {
	status := http.StatusNotFound
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	src := &HTTPSource{URL: srv.URL}
	_, err := src.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	status = http.StatusUnauthorized
	_, err = src.Load(context.Background())
	require.ErrorIs(t, err, ErrFetch)
	require.Contains(t, err.Error(), "401")

	srv.Close()
	_, err = src.Load(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestHTTPSourceNullDatabase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	snap, err := (&HTTPSource{URL: srv.URL + "/db.json"}).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Notes)
}
