package handler // handler package contains the full-dataset export endpoint

import (
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/home-inventory/internal/model"
)

// exportVersion tags the export document format so future readers can
// tell what they are parsing.
const exportVersion = "1.0"

// exportRoom is one room with all of its child metadata nested.  File
// bytes are excluded; manuals carry metadata only (FilePath is already
// unexported from JSON on the model).
type exportRoom struct {
    model.Room
    Manuals     []*model.Manual         `json:"manuals"`
    Appliances  []*model.Appliance      `json:"appliances"`
    Maintenance []model.MaintenanceTask `json:"maintenance"`
}

// exportDocument is the complete snapshot: every room with nested
// children, plus the export timestamp and a format-version tag.
type exportDocument struct {
    ExportedAt string       `json:"exported_at"`
    Version    string       `json:"version"`
    Rooms      []exportRoom `json:"rooms"`
}

// ExportAll handles GET /v1/export and returns the whole inventory as
// a single downloadable JSON document.
func (h *InventoryHandler) ExportAll(c echo.Context) error {
    ctx := c.Request().Context()

    rooms, err := h.RoomRepo.ListWithCounts(ctx, "")
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export data"})
    }

    doc := exportDocument{
        ExportedAt: time.Now().UTC().Format(time.RFC3339),
        Version:    exportVersion,
        Rooms:      make([]exportRoom, 0, len(rooms)),
    }
    for _, r := range rooms {
        manuals, err := h.ManualRepo.ListByRoom(ctx, r.ID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export data"})
        }
        appliances, err := h.ApplianceRepo.ListByRoom(ctx, r.ID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export data"})
        }
        tasks, err := h.MaintenanceRepo.ListByRoom(ctx, r.ID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export data"})
        }
        if manuals == nil {
            manuals = []*model.Manual{}
        }
        if appliances == nil {
            appliances = []*model.Appliance{}
        }
        if tasks == nil {
            tasks = []model.MaintenanceTask{}
        }
        doc.Rooms = append(doc.Rooms, exportRoom{
            Room:        r.Room,
            Manuals:     manuals,
            Appliances:  appliances,
            Maintenance: tasks,
        })
    }

    filename := fmt.Sprintf("castle-export-%s.json", time.Now().UTC().Format("2006-01-02"))
    c.Response().Header().Set(echo.HeaderContentDisposition,
        fmt.Sprintf(`attachment; filename="%s"`, filename))
    return c.JSON(http.StatusOK, doc)
}
