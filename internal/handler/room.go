package handler // handler package contains room record handlers

import (
    "database/sql" // sql supplies sentinel errors like sql.ErrNoRows
    "log"          // log records best-effort file cleanup failures
    "net/http"     // http provides status code constants
    "time"         // time stamps created/updated fields

    "github.com/google/uuid" // uuid generates record identifiers

    "github.com/iliyamo/home-inventory/internal/maintenance" // maintenance enriches and sorts tasks
    "github.com/iliyamo/home-inventory/internal/model"       // model holds the persisted record types
    "github.com/iliyamo/home-inventory/internal/repository"  // repository holds the data access layer
    "github.com/iliyamo/home-inventory/internal/validate"    // validate decodes raw payloads
    "github.com/labstack/echo/v4"                            // echo is the web framework used for handlers
)

// CreateRoom handles POST /v1/rooms and creates a new room
func (h *InventoryHandler) CreateRoom(c echo.Context) error {
    var form validate.RoomForm
    if err := c.Bind(&form); err != nil { // attempt to bind the request body
        return badRequest(c, "invalid request body")
    }
    in, err := form.Decode() // explicit decode step: typed input or field errors
    if err != nil {
        return badRequest(c, err.Error())
    }
    now := time.Now().UTC()
    room := &model.Room{
        ID:          uuid.NewString(),
        Name:        in.Name,
        Description: in.Description,
        Icon:        in.Icon,
        CreatedAt:   now,
        UpdatedAt:   now,
    }
    if err := h.RoomRepo.Create(c.Request().Context(), room); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
    }
    views := roomViews()
    h.recordChanged("rooms", "created", room.ID, "", views)
    return c.JSON(http.StatusCreated, echo.Map{"room": room, "invalidated": views})
}

// ListRooms handles GET /v1/rooms and returns all rooms with child
// counts.  The optional ?q= parameter filters by name substring.
func (h *InventoryHandler) ListRooms(c echo.Context) error {
    items, err := h.RoomRepo.ListWithCounts(c.Request().Context(), c.QueryParam("q"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRoom handles GET /v1/rooms/:id and returns the room together with
// its manuals, appliances and urgency-sorted maintenance tasks.
func (h *InventoryHandler) GetRoom(c echo.Context) error {
    ctx := c.Request().Context()
    room, err := h.RoomRepo.GetByID(ctx, c.Param("id"))
    if err != nil {
        if err == repository.ErrRoomNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    manuals, err := h.ManualRepo.ListByRoom(ctx, room.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    appliances, err := h.ApplianceRepo.ListByRoom(ctx, room.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    tasks, err := h.MaintenanceRepo.ListByRoom(ctx, room.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    now := time.Now().UTC()
    enriched := make([]model.EnrichedTask, 0, len(tasks))
    for _, t := range tasks {
        enriched = append(enriched, maintenance.Enrich(t, now))
    }

    return c.JSON(http.StatusOK, echo.Map{
        "room":        room,
        "manuals":     manuals,
        "appliances":  applianceViews(appliances, now),
        "maintenance": maintenance.SortByUrgency(enriched),
    })
}

// UpdateRoom handles PUT /v1/rooms/:id and updates the room's name,
// description and icon
func (h *InventoryHandler) UpdateRoom(c echo.Context) error {
    id := c.Param("id")
    var form validate.RoomForm
    if err := c.Bind(&form); err != nil {
        return badRequest(c, "invalid request body")
    }
    in, err := form.Decode()
    if err != nil {
        return badRequest(c, err.Error())
    }
    room := &model.Room{
        ID:          id,
        Name:        in.Name,
        Description: in.Description,
        Icon:        in.Icon,
        UpdatedAt:   time.Now().UTC(),
    }
    if err := h.RoomRepo.Update(c.Request().Context(), room); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    updated, err := h.RoomRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    views := roomViews()
    h.recordChanged("rooms", "updated", id, "", views)
    return c.JSON(http.StatusOK, echo.Map{"room": updated, "invalidated": views})
}

// DeleteRoom handles DELETE /v1/rooms/:id.  The database cascades the
// delete to the room's manuals, appliances and maintenance tasks, so
// stored manual files are removed first while their metadata is still
// readable.  File removal is best-effort: a file that fails to delete
// is logged and orphaned, never a request failure.
func (h *InventoryHandler) DeleteRoom(c echo.Context) error {
    ctx := c.Request().Context()
    id := c.Param("id")

    manuals, err := h.ManualRepo.ListByRoom(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    for _, m := range manuals {
        if err := h.Store.Delete(m.FilePath); err != nil {
            log.Printf("room delete: removing file %s failed: %v", m.FilePath, err)
        }
    }

    if err := h.RoomRepo.Delete(ctx, id); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    views := roomViews()
    h.recordChanged("rooms", "deleted", id, "", views)
    return c.JSON(http.StatusOK, echo.Map{"invalidated": views})
}
