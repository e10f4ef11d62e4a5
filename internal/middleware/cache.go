package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/home-inventory/internal/config"
)

// Cached views.  Every GET route maps onto one of these names, and
// every mutation reports which of them it invalidates.  Keys are
// written as prefix:view:sha1(route+query) so one view can be dropped
// wholesale with a pattern scan.
const (
    ViewRooms       = "rooms"       // room list (with counts / search)
    ViewRoomDetail  = "room"        // a single room and its children
    ViewMaintenance = "maintenance" // the whole-home maintenance list
)

// ViewForRoute maps a registered route path to the view caching it.
// Routes that are never cached (downloads, export) return "".
func ViewForRoute(route string) string {
    switch {
    case route == "/v1/rooms":
        return ViewRooms
    case route == "/v1/maintenance":
        return ViewMaintenance
    case strings.HasPrefix(route, "/v1/rooms/:id"):
        return ViewRoomDetail
    case strings.HasPrefix(route, "/v1/manuals/:id") ||
        strings.HasPrefix(route, "/v1/appliances/:id") ||
        strings.HasPrefix(route, "/v1/maintenance/:id"):
        return ViewRoomDetail
    }
    return ""
}

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }
func (cw *captureWriter) Write(b []byte) (int, error) {
    cw.size += int64(len(b))
    // Stop buffering past the cap; size keeps counting so the caller
    // can tell the capture is incomplete.
    if cw.limit <= 0 || cw.size <= cw.limit {
        cw.buf.Write(b)
    }
    return cw.ResponseWriter.Write(b)
}

// cacheKey builds prefix:view:hash where the hash covers the concrete
// route, path params and query so distinct records get distinct
// entries within the shared view namespace.
func cacheKey(prefix, view string, c echo.Context) string {
    r := c.Request()
    sum := sha1.Sum([]byte(r.Method + ":" + r.URL.Path + "?" + r.URL.RawQuery))
    return fmt.Sprintf("%s:%s:%x", prefix, view, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    total := 4 + 4 + len(hdrJSON) + len(body)
    out := make([]byte, total)
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:8+len(hdrJSON)], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if 8+hlen > len(bs) || hlen < 0 {
        return 0, nil, nil, false
    }
    var hdr http.Header
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
            return 0, nil, nil, false
        }
    } else {
        hdr = make(http.Header)
    }
    body = bs[8+hlen:]
    return status, hdr, body, true
}

// NewRedisCache caches successful GET responses per view.  Headers and
// body are stored together so clients see identical formatting on a
// hit.  Routes without a view mapping pass straight through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            view := ViewForRoute(c.Path())
            if view == "" {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg.Prefix, view, c)

            // Try get from Redis
            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil && len(bs) >= 8 {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        // X-Cache is set below; Content-Length is Echo's job
                        if strings.EqualFold(k, "Content-Length") {
                            continue
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            // Miss: capture
            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            // Responses larger than the configured cap are served but not
            // cached; a truncated entry must never be replayed.
            if cw.status == http.StatusOK && (maxBody <= 0 || cw.size <= maxBody) {
                hdr := make(http.Header, len(c.Response().Header()))
                for k, vals := range c.Response().Header() {
                    vv := make([]string, len(vals))
                    copy(vv, vals)
                    hdr[k] = vv
                }
                if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
                    _ = rdb.SetEx(context.Background(), key, payload, cfg.TTL).Err()
                }
            }
            return nil
        }
    }
}

// InvalidateViews drops every cached entry belonging to the named
// views.  Used synchronously by mutation handlers and again by the
// change-event consumer.  A nil client is a no-op.
func InvalidateViews(ctx context.Context, rdb *redis.Client, prefix string, views ...string) error {
    if rdb == nil {
        return nil
    }
    for _, view := range views {
        iter := rdb.Scan(ctx, 0, prefix+":"+view+":*", 100).Iterator()
        var keys []string
        for iter.Next(ctx) {
            keys = append(keys, iter.Val())
        }
        if err := iter.Err(); err != nil {
            return err
        }
        if len(keys) > 0 {
            if err := rdb.Del(ctx, keys...).Err(); err != nil {
                return err
            }
        }
    }
    return nil
}
