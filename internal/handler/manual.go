// Package handler: manual record handlers.  Manuals are the only
// record type with attached bytes; every filesystem touch goes through
// the path-confined store, and the upload boundary enforces the PDF
// type and size cap before the store is ever called.
package handler

import (
    "database/sql"
    "fmt"
    "io"
    "log"
    "mime/multipart"
    "net/http"
    "path/filepath"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/home-inventory/internal/model"
    "github.com/iliyamo/home-inventory/internal/repository"
    "github.com/iliyamo/home-inventory/internal/validate"
)

const (
    manualMIMEType    = "application/pdf"
    maxManualFileSize = 50 << 20 // 50 MiB
)

// readUpload validates the multipart file header and returns its
// bytes.  Rejections happen here, before any file-store call.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
    if ct := fh.Header.Get("Content-Type"); ct != manualMIMEType {
        return nil, fmt.Errorf("Invalid file type. Allowed types: %s", manualMIMEType)
    }
    if fh.Size > maxManualFileSize {
        return nil, fmt.Errorf("File too large. Maximum size: %dMB", maxManualFileSize/1024/1024)
    }
    f, err := fh.Open()
    if err != nil {
        return nil, err
    }
    defer f.Close()
    // The declared size is re-capped on read; clients lie.
    data, err := io.ReadAll(io.LimitReader(f, maxManualFileSize+1))
    if err != nil {
        return nil, err
    }
    if len(data) > maxManualFileSize {
        return nil, fmt.Errorf("File too large. Maximum size: %dMB", maxManualFileSize/1024/1024)
    }
    return data, nil
}

// CreateManual handles POST /v1/rooms/:id/manuals.  The request is
// multipart: title and description fields plus a required PDF file.
func (h *InventoryHandler) CreateManual(c echo.Context) error {
    ctx := c.Request().Context()
    roomID := c.Param("id")
    if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
        if err == repository.ErrRoomNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    in, err := validate.ManualForm{
        Title:       c.FormValue("title"),
        Description: c.FormValue("description"),
    }.Decode()
    if err != nil {
        return badRequest(c, err.Error())
    }

    fh, err := c.FormFile("file")
    if err != nil || fh.Size == 0 {
        return badRequest(c, "File is required")
    }
    data, err := readUpload(fh)
    if err != nil {
        return badRequest(c, err.Error())
    }

    // Stored name is a fresh id plus the original extension, so
    // uploads can never collide and never carry a traversal payload.
    id := uuid.NewString()
    storedName := id + filepath.Ext(fh.Filename)
    path, err := h.Store.Save(data, storedName)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store file"})
    }

    now := time.Now().UTC()
    m := &model.Manual{
        ID:          id,
        RoomID:      roomID,
        Title:       in.Title,
        Description: in.Description,
        Filename:    fh.Filename,
        FilePath:    path,
        FileSize:    int64(len(data)),
        CreatedAt:   now,
        UpdatedAt:   now,
    }
    if err := h.ManualRepo.Create(ctx, m); err != nil {
        // Roll the file back so a failed insert leaves nothing behind.
        if derr := h.Store.Delete(path); derr != nil {
            log.Printf("manual create: rollback of %s failed: %v", path, derr)
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create manual"})
    }
    views := childViews()
    h.recordChanged("manuals", "created", m.ID, roomID, views)
    return c.JSON(http.StatusCreated, echo.Map{"manual": m, "invalidated": views})
}

// ListManuals handles GET /v1/rooms/:id/manuals, newest first.
func (h *InventoryHandler) ListManuals(c echo.Context) error {
    items, err := h.ManualRepo.ListByRoom(c.Request().Context(), c.Param("id"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetManual handles GET /v1/manuals/:id.
func (h *InventoryHandler) GetManual(c echo.Context) error {
    m, err := h.ManualRepo.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        if err == repository.ErrManualNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "manual not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, m)
}

// UpdateManual handles PUT /v1/manuals/:id.  Metadata is multipart like
// the create; a replacement file is optional and, when present,
// replaces the stored bytes and deletes the old ones.
func (h *InventoryHandler) UpdateManual(c echo.Context) error {
    ctx := c.Request().Context()
    existing, err := h.ManualRepo.GetByID(ctx, c.Param("id"))
    if err != nil {
        if err == repository.ErrManualNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "manual not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    in, err := validate.ManualForm{
        Title:       c.FormValue("title"),
        Description: c.FormValue("description"),
    }.Decode()
    if err != nil {
        return badRequest(c, err.Error())
    }

    m := *existing
    m.Title = in.Title
    m.Description = in.Description
    m.UpdatedAt = time.Now().UTC()

    if fh, ferr := c.FormFile("file"); ferr == nil && fh.Size > 0 {
        data, err := readUpload(fh)
        if err != nil {
            return badRequest(c, err.Error())
        }
        if err := h.Store.Delete(existing.FilePath); err != nil {
            log.Printf("manual update: removing old file %s failed: %v", existing.FilePath, err)
        }
        storedName := m.ID + filepath.Ext(fh.Filename)
        path, err := h.Store.Save(data, storedName)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store file"})
        }
        m.Filename = fh.Filename
        m.FilePath = path
        m.FileSize = int64(len(data))
    }

    if err := h.ManualRepo.Update(ctx, &m); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "manual not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    views := childViews()
    h.recordChanged("manuals", "updated", m.ID, m.RoomID, views)
    return c.JSON(http.StatusOK, echo.Map{"manual": m, "invalidated": views})
}

// DeleteManual handles DELETE /v1/manuals/:id.  The stored file goes
// first, best-effort; the metadata row goes second.  A file that was
// already missing is not an error.
func (h *InventoryHandler) DeleteManual(c echo.Context) error {
    ctx := c.Request().Context()
    m, err := h.ManualRepo.GetByID(ctx, c.Param("id"))
    if err != nil {
        if err == repository.ErrManualNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "manual not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if err := h.Store.Delete(m.FilePath); err != nil {
        log.Printf("manual delete: removing file %s failed: %v", m.FilePath, err)
    }
    if err := h.ManualRepo.Delete(ctx, m.ID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "manual not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    views := childViews()
    h.recordChanged("manuals", "deleted", m.ID, m.RoomID, views)
    return c.JSON(http.StatusOK, echo.Map{"invalidated": views})
}

// DownloadManual handles GET /v1/files/:id and streams the stored PDF
// with the original filename in the Content-Disposition header.
// Missing bytes for existing metadata are a 404, not a server error:
// file and row are not written transactionally and may diverge.
func (h *InventoryHandler) DownloadManual(c echo.Context) error {
    m, err := h.ManualRepo.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        if err == repository.ErrManualNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "manual not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    data, err := h.Store.Read(m.FilePath)
    if err != nil {
        // ErrInvalidPath means corrupted metadata; either way nothing
        // safe can be served.
        log.Printf("download: reading %s failed: %v", m.FilePath, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read file"})
    }
    if data == nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
    }
    c.Response().Header().Set(echo.HeaderContentDisposition, contentDisposition(m.Filename))
    return c.Blob(http.StatusOK, manualMIMEType, data)
}

// contentDisposition builds an attachment header value for the given
// filename.  CR, LF and double quotes are stripped (header-injection
// defense); filenames with non-ASCII code points use the RFC 5987
// filename* form.
func contentDisposition(filename string) string {
    sanitized := strings.Map(func(r rune) rune {
        if r == '\r' || r == '\n' || r == '"' {
            return -1
        }
        return r
    }, filename)

    ascii := true
    for _, r := range sanitized {
        if r > 127 {
            ascii = false
            break
        }
    }
    if ascii {
        return fmt.Sprintf(`attachment; filename="%s"`, sanitized)
    }
    return "attachment; filename*=UTF-8''" + rfc5987Encode(sanitized)
}

// rfc5987Encode percent-encodes every byte outside the attr-char set
// of RFC 5987 §3.2.1.
func rfc5987Encode(s string) string {
    const attrChars = "!#$&+-.^_`|~"
    var b strings.Builder
    for _, c := range []byte(s) {
        switch {
        case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
            strings.IndexByte(attrChars, c) >= 0:
            b.WriteByte(c)
        default:
            fmt.Fprintf(&b, "%%%02X", c)
        }
    }
    return b.String()
}
