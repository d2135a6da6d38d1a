package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Source delivers a complete snapshot on each call.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}

// Open picks a Source for location: an http(s) database URL, "-" for stdin,
// or a file path.
func Open(location, token string, timeout time.Duration) (Source, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, ErrNoSource
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		if _, err := url.Parse(location); err != nil {
			return nil, fmt.Errorf("invalid source url: %w", err)
		}
		return &HTTPSource{URL: location, Token: token, Client: &http.Client{Timeout: timeout}}, nil
	default:
		return &FileSource{Path: location}, nil
	}
}

// FileSource reads an exported snapshot from disk, or from Stdin when Path is "-".
type FileSource struct {
	Path  string
	Stdin io.Reader
}

func (s *FileSource) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if s.Path == "-" {
		in := s.Stdin
		if in == nil {
			in = os.Stdin
		}
		return Decode(in)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, fmt.Errorf("snapshot %s: %w", s.Path, ErrNotFound)
		}
		return Snapshot{}, err
	}
	defer f.Close()
	return Decode(f)
}

// HTTPSource reads the whole tree through the database REST API (GET <url>/.json).
type HTTPSource struct {
	URL    string
	Token  string
	Client *http.Client
}

func (s *HTTPSource) endpoint() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(u.Path, ".json") {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/.json"
	}
	if s.Token != "" {
		q := u.Query()
		q.Set("auth", s.Token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (s *HTTPSource) Load(ctx context.Context) (Snapshot, error) {
	endpoint, err := s.endpoint()
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid source url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Snapshot{}, err
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, s.URL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Snapshot{}, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}
	return Decode(resp.Body)
}
