package handler

import (
    "bytes"
    "mime/multipart"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestContentDisposition_ASCII(t *testing.T) {
    got := contentDisposition("washer manual.pdf")
    assert.Equal(t, `attachment; filename="washer manual.pdf"`, got)
}

func TestContentDisposition_StripsHeaderInjection(t *testing.T) {
    got := contentDisposition("evil\r\nSet-Cookie: x\"y.pdf")
    assert.NotContains(t, got, "\r")
    assert.NotContains(t, got, "\n")
    assert.Equal(t, `attachment; filename="evilSet-Cookie: xy.pdf"`, got)
}

func TestContentDisposition_NonASCIIUsesRFC5987(t *testing.T) {
    got := contentDisposition("Bedienungsanleitung-für-Herd.pdf")
    assert.True(t, strings.HasPrefix(got, "attachment; filename*=UTF-8''"), got)
    assert.NotContains(t, got, "ü", "non-ASCII bytes must be percent-encoded")
    assert.Contains(t, got, "f%C3%BCr")
}

func TestRFC5987Encode(t *testing.T) {
    assert.Equal(t, "plain-name.pdf", rfc5987Encode("plain-name.pdf"))
    assert.Equal(t, "a%20b", rfc5987Encode("a b"))
    assert.Equal(t, "%E2%82%AC.pdf", rfc5987Encode("€.pdf"))
}

// uploadHeader builds a *multipart.FileHeader the way Echo would hand
// it to the handler, with the given declared content type and body.
func uploadHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
    t.Helper()

    var buf bytes.Buffer
    w := multipart.NewWriter(&buf)
    hdr := make(map[string][]string)
    hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
    hdr["Content-Type"] = []string{contentType}
    part, err := w.CreatePart(hdr)
    require.NoError(t, err)
    _, err = part.Write(body)
    require.NoError(t, err)
    require.NoError(t, w.Close())

    req := httptest.NewRequest(http.MethodPost, "/", &buf)
    req.Header.Set("Content-Type", w.FormDataContentType())
    require.NoError(t, req.ParseMultipartForm(1<<20))
    files := req.MultipartForm.File["file"]
    require.Len(t, files, 1)
    return files[0]
}

func TestReadUpload_AcceptsPDF(t *testing.T) {
    fh := uploadHeader(t, "manual.pdf", "application/pdf", []byte("%PDF-1.7 data"))
    data, err := readUpload(fh)
    require.NoError(t, err)
    assert.Equal(t, []byte("%PDF-1.7 data"), data)
}

func TestReadUpload_RejectsWrongType(t *testing.T) {
    fh := uploadHeader(t, "photo.png", "image/png", []byte("png bytes"))
    _, err := readUpload(fh)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "Invalid file type")
}

func TestReadUpload_RejectsOversizedDeclaration(t *testing.T) {
    fh := uploadHeader(t, "big.pdf", "application/pdf", []byte("x"))
    fh.Size = maxManualFileSize + 1
    _, err := readUpload(fh)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "File too large")
}
