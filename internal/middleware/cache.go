package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/coach-seat-reservation/internal/config"
)

// captureWriter forwards the response to the client and keeps a copy of up
// to limit bytes (no limit when limit <= 0).
type captureWriter struct {
    http.ResponseWriter
    status    int
    buf       bytes.Buffer
    limit     int64
    truncated bool
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
    switch {
    case cw.limit <= 0:
        cw.buf.Write(b)
    case int64(cw.buf.Len()+len(b)) <= cw.limit:
        cw.buf.Write(b)
    default:
        cw.truncated = true
    }
    return cw.ResponseWriter.Write(b)
}

// storedHeaders lists the response headers worth replaying on a hit.  CORS,
// Vary and the rate limit counters belong to the request being served and
// are written by their own middleware every time.
var storedHeaders = []string{
    echo.HeaderContentType,
    echo.HeaderContentEncoding,
    echo.HeaderLastModified,
    "Cache-Control",
    "Content-Language",
    "ETag",
}

func keepStoredHeaders(h http.Header) http.Header {
    out := make(http.Header, len(storedHeaders))
    for _, k := range storedHeaders {
        if vals := h.Values(k); len(vals) > 0 {
            out[http.CanonicalHeaderKey(k)] = append([]string(nil), vals...)
        }
    }
    return out
}

// generationKey holds a counter bumped by every successful write.  Entries
// live under the generation that was current when their read started, so a
// response computed before a booking committed is never served after it.
func generationKey(prefix string) string { return prefix + ":gen" }

func currentGeneration(ctx context.Context, rdb *redis.Client, prefix string) (int64, error) {
    gen, err := rdb.Get(ctx, generationKey(prefix)).Int64()
    if errors.Is(err, redis.Nil) {
        return 0, nil
    }
    return gen, err
}

// cacheKey builds "<prefix>:<generation>:<sha1 of route and query>".
func cacheKey(prefix string, gen int64, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%d:%x", prefix, gen, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    header = make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, header, bs[8+hlen:], true
}

// NewRedisCache serves cached 200 responses to GET requests and stores
// fresh ones together with their representation headers.  Responses larger
// than MaxBodyBytes are not stored.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 10 * time.Second
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            ctx := c.Request().Context()
            gen, err := currentGeneration(ctx, rdb, cfg.Prefix)
            if err != nil {
                c.Logger().Warnf("[cache] read generation: %v", err)
                return next(c)
            }
            key := cacheKey(cfg.Prefix, gen, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    h := c.Response().Header()
                    for k, vals := range keepStoredHeaders(hdr) {
                        h[k] = vals
                    }
                    h.Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    _, _ = c.Response().Write(body)
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if cw.status != http.StatusOK || cw.truncated {
                return nil
            }
            payload, err := encodePayload(cw.status, keepStoredHeaders(c.Response().Header()), cw.buf.Bytes())
            if err != nil {
                return nil
            }
            if err := rdb.Set(context.WithoutCancel(ctx), key, payload, ttl).Err(); err != nil {
                c.Logger().Warnf("[cache] store %s: %v", key, err)
            }
            return nil
        }
    }
}

// InvalidateCache bumps the cache generation after the wrapped handler
// answers with a 2xx status and then drops the entries of older
// generations.  It goes on every route that changes the coach.
func InvalidateCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if err := next(c); err != nil {
                return err
            }
            if st := c.Response().Status; st < 200 || st >= 300 {
                return nil
            }
            ctx := context.WithoutCancel(c.Request().Context())
            if err := rdb.Incr(ctx, generationKey(cfg.Prefix)).Err(); err != nil {
                c.Logger().Warnf("[cache] bump generation of %s: %v", cfg.Prefix, err)
            }
            if err := purgePrefix(ctx, rdb, cfg.Prefix); err != nil {
                c.Logger().Warnf("[cache] purge %s failed: %v", cfg.Prefix, err)
            }
            return nil
        }
    }
}

// purgePrefix deletes every cached entry under prefix, keeping the
// generation counter.
func purgePrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
    gen := generationKey(prefix)
    iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
    var keys []string
    for iter.Next(ctx) {
        if k := iter.Val(); k != gen {
            keys = append(keys, k)
        }
    }
    if err := iter.Err(); err != nil {
        return err
    }
    if len(keys) == 0 {
        return nil
    }
    return rdb.Del(ctx, keys...).Err()
}
