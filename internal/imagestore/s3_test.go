package imagestore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "contentgen-images"

// fakeS3 answers the path-style requests S3Store sends: HEAD and PUT on the
// bucket, and PUT on objects.
type fakeS3 struct {
	mu         sync.Mutex
	denyHeads  int
	missing    bool
	heads      int
	bucketPuts int
	objects    map[string][]byte
	types      map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.Trim(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodHead && path == testBucket:
		f.heads++
		if f.heads <= f.denyHeads {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if f.missing && f.bucketPuts == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && path == testBucket:
		f.bucketPuts++
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && strings.HasPrefix(path, testBucket+"/"):
		body, _ := io.ReadAll(r.Body)
		key := strings.TrimPrefix(path, testBucket+"/")
		f.objects[key] = body
		f.types[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"0123456789abcdef0123456789abcdef"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newFakeS3Store(t *testing.T, f *fakeS3) (*S3Store, *httptest.Server) {
	t.Helper()
	f.objects = make(map[string][]byte)
	f.types = make(map[string]string)
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	s, err := NewS3Store(S3Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    testBucket,
	})
	require.NoError(t, err)
	return s, srv
}

func TestNewS3StoreValidatesConfig(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	require.Error(t, err)
	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a"})
	require.Error(t, err)
	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.Error(t, err)
}

func TestS3StorePutThenURL(t *testing.T) {
	ctx := context.Background()
	f := &fakeS3{}
	s, srv := newFakeS3Store(t, f)

	key := NewKey("image/png")
	require.NoError(t, s.Put(ctx, key, []byte("png-bytes"), "image/png"))
	require.NoError(t, s.Put(ctx, NewKey("image/png"), []byte("more"), "image/png"))

	f.mu.Lock()
	assert.Equal(t, 1, f.heads, "bucket is checked once")
	assert.Contains(t, string(f.objects[key]), "png-bytes")
	assert.Equal(t, "image/png", f.types[key])
	f.mu.Unlock()

	u, err := s.URL(ctx, key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, srv.URL+"/"+testBucket+"/"+key+"?"), u)
	assert.Contains(t, u, "X-Amz-Signature")
}

func TestS3StoreCreatesMissingBucket(t *testing.T) {
	f := &fakeS3{missing: true}
	s, _ := newFakeS3Store(t, f)

	require.NoError(t, s.Put(context.Background(), "images/a.png", []byte("a"), "image/png"))

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 1, f.bucketPuts)
	assert.Contains(t, f.objects, "images/a.png")
}

func TestS3StoreRetriesBucketCheckAfterFailure(t *testing.T) {
	f := &fakeS3{denyHeads: 1}
	s, _ := newFakeS3Store(t, f)
	ctx := context.Background()

	require.Error(t, s.Put(ctx, "images/a.png", []byte("a"), "image/png"))
	require.NoError(t, s.Put(ctx, "images/b.png", []byte("b"), "image/png"))

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 2, f.heads)
	assert.NotContains(t, f.objects, "images/a.png")
	assert.Contains(t, f.objects, "images/b.png")
}
