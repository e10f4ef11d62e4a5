package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func echoContext(t *testing.T, method, target string) echo.Context {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, target, nil)
    return e.NewContext(req, httptest.NewRecorder())
}

func TestViewForRoute(t *testing.T) {
    tests := []struct {
        route string
        want  string
    }{
        {"/v1/rooms", ViewRooms},
        {"/v1/maintenance", ViewMaintenance},
        {"/v1/rooms/:id", ViewRoomDetail},
        {"/v1/rooms/:id/manuals", ViewRoomDetail},
        {"/v1/rooms/:id/maintenance", ViewRoomDetail},
        {"/v1/manuals/:id", ViewRoomDetail},
        {"/v1/appliances/:id", ViewRoomDetail},
        {"/v1/maintenance/:id", ViewRoomDetail},
        {"/v1/files/:id", ""},
        {"/v1/export", ""},
        {"/healthz", ""},
    }
    for _, tc := range tests {
        assert.Equal(t, tc.want, ViewForRoute(tc.route), tc.route)
    }
}

func TestPayloadRoundtrip(t *testing.T) {
    hdr := http.Header{}
    hdr.Set("Content-Type", "application/json")
    hdr.Add("X-Custom", "a")
    hdr.Add("X-Custom", "b")
    body := []byte(`{"items":[]}`)

    payload, err := encodePayload(http.StatusOK, hdr, body)
    require.NoError(t, err)

    status, gotHdr, gotBody, ok := decodePayload(payload)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, body, gotBody)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, []string{"a", "b"}, gotHdr.Values("X-Custom"))
}

func TestDecodePayload_Garbage(t *testing.T) {
    _, _, _, ok := decodePayload([]byte("short"))
    assert.False(t, ok)

    // Header length pointing past the buffer must not panic.
    bad := make([]byte, 12)
    bad[7] = 0xFF
    _, _, _, ok = decodePayload(bad)
    assert.False(t, ok)
}

func TestCacheKey_DistinctPerQueryAndView(t *testing.T) {
    // Keys carry the view name in clear so invalidation can match on
    // prefix:view:*.
    c1 := echoContext(t, http.MethodGet, "/v1/rooms?q=kit")
    c2 := echoContext(t, http.MethodGet, "/v1/rooms?q=bath")

    k1 := cacheKey("cache", ViewRooms, c1)
    k2 := cacheKey("cache", ViewRooms, c2)
    assert.NotEqual(t, k1, k2)
    assert.Contains(t, k1, "cache:"+ViewRooms+":")
    assert.Contains(t, k2, "cache:"+ViewRooms+":")
}
