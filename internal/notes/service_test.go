package notes

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mithrel/notedeck/internal/datefmt"
	"github.com/mithrel/notedeck/internal/snapshot"
	"github.com/mithrel/notedeck/pkg/api"
)

type fakeSource struct {
	snap  snapshot.Snapshot
	err   error
	calls int
}

func (f *fakeSource) Load(ctx context.Context) (snapshot.Snapshot, error) {
	f.calls++
	return f.snap, f.err
}

func newTestService(src snapshot.Source, buf *bytes.Buffer) *Service {
	log := slog.New(slog.NewTextHandler(buf, nil))
	return New(src, datefmt.New(log, time.UTC), log, DefaultOptions())
}

func sampleSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Notes: []api.RawNote{
			{Key: "g", ID: "g", Title: "Grocery List", Body: "Grocery List\nMilk, eggs", CreatedDate: "2024-01-01T09:00:00Z", UpdatedDate: "2024-03-05T14:07:00Z"},
			{Key: "n", ID: "n", Title: "Notes", Body: "<h1>Notes</h1><p>content</p>", CreatedDate: "1970-01-01T00:00:00Z", UpdatedDate: "2024-01-02T00:00:00Z"},
		},
		Metadata: api.Metadata{LastSync: "2024-05-01T10:00:00Z"},
		Skipped:  []string{"bad"},
	}
}

func TestServiceList(t *testing.T) {
	var buf bytes.Buffer
	src := &fakeSource{snap: sampleSnapshot()}
	svc := newTestService(src, &buf)

	l, err := svc.List(context.Background(), api.DefaultQueryState())
	require.NoError(t, err)
	require.Len(t, l.Items, 2)
	require.Equal(t, "g", l.Items[0].Note.Key)
	require.Equal(t, "Milk, eggs", l.Items[0].Preview)
	require.Equal(t, "Mar 5, 2024 2:07 PM", l.Items[0].Updated)
	require.Equal(t, "content", l.Items[1].Preview)
	require.Equal(t, "May 1, 2024 10:00 AM", l.LastSync)
	require.Equal(t, 2, l.Total, "falls back to the number of notes")
	require.Len(t, l.Notes, 2)
	require.Contains(t, buf.String(), "skipped malformed notes")
}

func TestServiceListSearch(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(&fakeSource{snap: sampleSnapshot()}, &buf)

	l, err := svc.List(context.Background(), api.QueryState{Search: "milk", Field: api.SortTitle, Order: api.Asc})
	require.NoError(t, err)
	require.Len(t, l.Items, 1)

	l, err = svc.List(context.Background(), api.QueryState{Search: "bread"})
	require.NoError(t, err)
	require.Empty(t, l.Items)
}

func TestServiceLastSyncNever(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(&fakeSource{}, &buf)
	require.Equal(t, NeverSynced, svc.LastSync(api.Metadata{}))
}

func TestServiceShow(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(&fakeSource{snap: sampleSnapshot()}, &buf)

	d, err := svc.Show(context.Background(), "n")
	require.NoError(t, err)
	require.Equal(t, api.KindHTML, d.Note.ContentKind)
	require.Equal(t, "<p>content</p>", d.Note.BodyDisplay)
	require.Equal(t, datefmt.UnknownDate, d.Created)
	require.Equal(t, "January 2, 2024 12:00 AM", d.Updated)

	_, err = svc.Show(context.Background(), "missing")
	require.True(t, errors.Is(err, snapshot.ErrNotFound))
}

func TestServicePropagatesSourceErrors(t *testing.T) {
	var buf bytes.Buffer
	src := &fakeSource{err: snapshot.ErrFetch}
	svc := newTestService(src, &buf)

	_, err := svc.List(context.Background(), api.DefaultQueryState())
	require.ErrorIs(t, err, snapshot.ErrFetch)
	_, err = svc.Show(context.Background(), "g")
	require.ErrorIs(t, err, snapshot.ErrFetch)
	require.Equal(t, 2, src.calls)
}

func TestServiceWithoutTitleStripping(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	opts := DefaultOptions()
	opts.Policy.StripTitle = false
	svc := New(&fakeSource{snap: sampleSnapshot()}, datefmt.New(log, time.UTC), log, opts)

	d, err := svc.Show(context.Background(), "g")
	require.NoError(t, err)
	require.Equal(t, "Grocery List\nMilk, eggs", d.Note.BodyDisplay)
}
