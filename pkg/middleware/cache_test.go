package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appcache "github.com/portafy/portafy/pkg/cache"
	ctxPkg "github.com/portafy/portafy/pkg/context"
	"github.com/portafy/portafy/pkg/internal/storage/kv"
)

func TestParseCacheControlTTL(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		wantTTL time.Duration
		wantOK  bool
	}{
		{"empty", "", 0, true},
		{"no-store", "no-store", 0, false},
		{"private", "private, max-age=60", 0, false},
		{"max-age", "max-age=60", 60 * time.Second, true},
		{"max-age with extras", "public, max-age=120, must-revalidate", 120 * time.Second, true},
		{"unparsable max-age", "max-age=abc", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			if tc.header != "" {
				h.Set("Cache-Control", tc.header)
			}

			ttl, ok := parseCacheControlTTL(h)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}

			if ttl != tc.wantTTL {
				t.Fatalf("ttl = %v, want %v", ttl, tc.wantTTL)
			}
		})
	}
}

func TestShouldBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := CacheConfig{BypassHeader: "X-Cache-Bypass"}
	methods := buildMethodSet([]string{"GET"})

	newCtx := func(method string, headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(method, "/api/v1/files", nil)

		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}

		return c
	}

	if shouldBypass(newCtx(http.MethodGet, nil), cfg, methods) {
		t.Fatal("plain GET should be cacheable")
	}

	if !shouldBypass(newCtx(http.MethodPost, nil), cfg, methods) {
		t.Fatal("POST should bypass the cache")
	}

	if !shouldBypass(newCtx(http.MethodGet, map[string]string{"X-Cache-Bypass": "1"}), cfg, methods) {
		t.Fatal("bypass header should skip the cache")
	}
}

// TestWriteBumpsGeneration 验证写请求推进用户缓存代数，
// 代数变化后缓存键不同，旧的列表快照不再被命中.
func TestWriteBumpsGeneration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	kvs, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("new kv store: %v", err)
	}

	t.Cleanup(func() { _ = kvs.Close() })

	cfg := DefaultCacheConfig(appcache.NewCache(kvs))

	newCtx := func(method string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(method, "/api/v1/files", nil)
		c.Request = c.Request.WithContext(ctxPkg.WithUser(c.Request.Context(), "alice@example.com"))

		return c
	}

	get := newCtx(http.MethodGet)

	before := loadGeneration(get, cfg)
	if before != 0 {
		t.Fatalf("fresh user should start at generation 0, got %d", before)
	}

	keyBefore := buildCacheKey(get, before)

	bumpGeneration(newCtx(http.MethodDelete), cfg)

	after := loadGeneration(get, cfg)
	if after == 0 {
		t.Fatal("generation should advance after a write")
	}

	if keyAfter := buildCacheKey(get, after); keyAfter == keyBefore {
		t.Fatal("cache key must change with the generation")
	}

	// 其他用户的代数不受影响
	other := newCtx(http.MethodGet)
	other.Request = other.Request.WithContext(ctxPkg.WithUser(context.Background(), "bob@example.com"))

	if gen := loadGeneration(other, cfg); gen != 0 {
		t.Fatalf("other users keep their generation, got %d", gen)
	}
}

func TestBodyCaptureWriterTruncates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w := &bodyCaptureWriter{ResponseWriter: c.Writer, max: 4}

	if _, err := w.Write([]byte("abcdef")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !w.truncated {
		t.Fatal("writer should mark the capture as truncated")
	}

	if got := w.buf.String(); got != "abcd" {
		t.Fatalf("captured %q, want %q", got, "abcd")
	}

	// 客户端响应不受截断影响
	if got := rec.Body.String(); got != "abcdef" {
		t.Fatalf("response body %q, want %q", got, "abcdef")
	}
}
