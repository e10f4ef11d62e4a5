package handler // handler package contains maintenance task handlers

import (
    "database/sql"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/home-inventory/internal/maintenance"
    "github.com/iliyamo/home-inventory/internal/model"
    "github.com/iliyamo/home-inventory/internal/repository"
    "github.com/iliyamo/home-inventory/internal/validate"
)

// CreateMaintenanceTask handles POST /v1/rooms/:id/maintenance.  New
// tasks always start with no completion history.
func (h *InventoryHandler) CreateMaintenanceTask(c echo.Context) error {
    ctx := c.Request().Context()
    roomID := c.Param("id")
    if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
        if err == repository.ErrRoomNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    var form validate.MaintenanceForm
    if err := c.Bind(&form); err != nil {
        return badRequest(c, "invalid request body")
    }
    in, err := form.Decode()
    if err != nil {
        return badRequest(c, err.Error())
    }

    now := time.Now().UTC()
    t := &model.MaintenanceTask{
        ID:          uuid.NewString(),
        RoomID:      roomID,
        TaskName:    in.TaskName,
        Description: in.Description,
        Frequency:   in.Frequency,
        CreatedAt:   now,
        UpdatedAt:   now,
    }
    if err := h.MaintenanceRepo.Create(ctx, t); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create task"})
    }
    views := maintenanceViews()
    h.recordChanged("maintenance", "created", t.ID, roomID, views)
    return c.JSON(http.StatusCreated, echo.Map{"task": maintenance.Enrich(*t, now), "invalidated": views})
}

// ListRoomMaintenance handles GET /v1/rooms/:id/maintenance and
// returns the room's tasks enriched and sorted by urgency.
func (h *InventoryHandler) ListRoomMaintenance(c echo.Context) error {
    tasks, err := h.MaintenanceRepo.ListByRoom(c.Request().Context(), c.Param("id"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    now := time.Now().UTC()
    enriched := make([]model.EnrichedTask, 0, len(tasks))
    for _, t := range tasks {
        enriched = append(enriched, maintenance.Enrich(t, now))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": maintenance.SortByUrgency(enriched)})
}

// ListAllMaintenance handles GET /v1/maintenance: every task in the
// home with its room name, sorted by urgency across rooms.
func (h *InventoryHandler) ListAllMaintenance(c echo.Context) error {
    rows, err := h.MaintenanceRepo.ListAllWithRoom(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    now := time.Now().UTC()
    enriched := make([]model.EnrichedTask, 0, len(rows))
    for _, row := range rows {
        et := maintenance.Enrich(row.Task, now)
        et.RoomName = row.RoomName
        enriched = append(enriched, et)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": maintenance.SortByUrgency(enriched)})
}

// GetMaintenanceTask handles GET /v1/maintenance/:id
func (h *InventoryHandler) GetMaintenanceTask(c echo.Context) error {
    t, err := h.MaintenanceRepo.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        if err == repository.ErrTaskNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, maintenance.Enrich(*t, time.Now().UTC()))
}

// UpdateMaintenanceTask handles PUT /v1/maintenance/:id.  Only the
// name, description and frequency change; the completion history is
// owned by CompleteMaintenanceTask.
func (h *InventoryHandler) UpdateMaintenanceTask(c echo.Context) error {
    ctx := c.Request().Context()
    existing, err := h.MaintenanceRepo.GetByID(ctx, c.Param("id"))
    if err != nil {
        if err == repository.ErrTaskNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    var form validate.MaintenanceForm
    if err := c.Bind(&form); err != nil {
        return badRequest(c, "invalid request body")
    }
    in, err := form.Decode()
    if err != nil {
        return badRequest(c, err.Error())
    }

    now := time.Now().UTC()
    t := *existing
    t.TaskName = in.TaskName
    t.Description = in.Description
    t.Frequency = in.Frequency
    t.UpdatedAt = now

    if err := h.MaintenanceRepo.Update(ctx, &t); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    views := maintenanceViews()
    h.recordChanged("maintenance", "updated", t.ID, t.RoomID, views)
    return c.JSON(http.StatusOK, echo.Map{"task": maintenance.Enrich(t, now), "invalidated": views})
}

// CompleteMaintenanceTask handles POST /v1/maintenance/:id/complete.
// Setting last_completed shifts the computed due date forward one
// interval; for a one-time task it is the terminal state.
func (h *InventoryHandler) CompleteMaintenanceTask(c echo.Context) error {
    ctx := c.Request().Context()
    id := c.Param("id")
    now := time.Now().UTC()

    if err := h.MaintenanceRepo.Complete(ctx, id, now); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    t, err := h.MaintenanceRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    views := maintenanceViews()
    h.recordChanged("maintenance", "completed", id, t.RoomID, views)
    return c.JSON(http.StatusOK, echo.Map{"task": maintenance.Enrich(*t, now), "invalidated": views})
}

// DeleteMaintenanceTask handles DELETE /v1/maintenance/:id
func (h *InventoryHandler) DeleteMaintenanceTask(c echo.Context) error {
    ctx := c.Request().Context()
    t, err := h.MaintenanceRepo.GetByID(ctx, c.Param("id"))
    if err != nil {
        if err == repository.ErrTaskNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if err := h.MaintenanceRepo.Delete(ctx, t.ID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    views := maintenanceViews()
    h.recordChanged("maintenance", "deleted", t.ID, t.RoomID, views)
    return c.JSON(http.StatusOK, echo.Map{"invalidated": views})
}
