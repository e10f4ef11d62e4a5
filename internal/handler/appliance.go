package handler // handler package contains appliance record handlers

import (
    "database/sql"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/home-inventory/internal/model"
    "github.com/iliyamo/home-inventory/internal/repository"
    "github.com/iliyamo/home-inventory/internal/validate"
)

// applianceView decorates an appliance with its computed warranty
// status for presentation.
type applianceView struct {
    *model.Appliance
    WarrantyStatus string `json:"warranty_status"`
}

func applianceViews(items []*model.Appliance, now time.Time) []applianceView {
    out := make([]applianceView, 0, len(items))
    for _, a := range items {
        out = append(out, applianceView{Appliance: a, WarrantyStatus: a.WarrantyStatus(now)})
    }
    return out
}

// CreateAppliance handles POST /v1/rooms/:id/appliances
func (h *InventoryHandler) CreateAppliance(c echo.Context) error {
    ctx := c.Request().Context()
    roomID := c.Param("id")
    if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
        if err == repository.ErrRoomNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    var form validate.ApplianceForm
    if err := c.Bind(&form); err != nil {
        return badRequest(c, "invalid request body")
    }
    in, err := form.Decode()
    if err != nil {
        return badRequest(c, err.Error())
    }

    now := time.Now().UTC()
    a := &model.Appliance{
        ID:                 uuid.NewString(),
        RoomID:             roomID,
        Name:               in.Name,
        Brand:              in.Brand,
        ModelNumber:        in.ModelNumber,
        SerialNumber:       in.SerialNumber,
        PurchaseDate:       in.PurchaseDate,
        WarrantyExpiration: in.WarrantyExpiration,
        Notes:              in.Notes,
        CreatedAt:          now,
        UpdatedAt:          now,
    }
    if err := h.ApplianceRepo.Create(ctx, a); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create appliance"})
    }
    views := childViews()
    h.recordChanged("appliances", "created", a.ID, roomID, views)
    return c.JSON(http.StatusCreated, echo.Map{"appliance": a, "invalidated": views})
}

// ListAppliances handles GET /v1/rooms/:id/appliances, ordered by name
func (h *InventoryHandler) ListAppliances(c echo.Context) error {
    items, err := h.ApplianceRepo.ListByRoom(c.Request().Context(), c.Param("id"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": applianceViews(items, time.Now().UTC())})
}

// GetAppliance handles GET /v1/appliances/:id
func (h *InventoryHandler) GetAppliance(c echo.Context) error {
    a, err := h.ApplianceRepo.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        if err == repository.ErrApplianceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appliance not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, applianceView{Appliance: a, WarrantyStatus: a.WarrantyStatus(time.Now().UTC())})
}

// UpdateAppliance handles PUT /v1/appliances/:id
func (h *InventoryHandler) UpdateAppliance(c echo.Context) error {
    ctx := c.Request().Context()
    existing, err := h.ApplianceRepo.GetByID(ctx, c.Param("id"))
    if err != nil {
        if err == repository.ErrApplianceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appliance not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    var form validate.ApplianceForm
    if err := c.Bind(&form); err != nil {
        return badRequest(c, "invalid request body")
    }
    in, err := form.Decode()
    if err != nil {
        return badRequest(c, err.Error())
    }

    a := *existing
    a.Name = in.Name
    a.Brand = in.Brand
    a.ModelNumber = in.ModelNumber
    a.SerialNumber = in.SerialNumber
    a.PurchaseDate = in.PurchaseDate
    a.WarrantyExpiration = in.WarrantyExpiration
    a.Notes = in.Notes
    a.UpdatedAt = time.Now().UTC()

    if err := h.ApplianceRepo.Update(ctx, &a); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appliance not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    views := childViews()
    h.recordChanged("appliances", "updated", a.ID, a.RoomID, views)
    return c.JSON(http.StatusOK, echo.Map{"appliance": a, "invalidated": views})
}

// DeleteAppliance handles DELETE /v1/appliances/:id
func (h *InventoryHandler) DeleteAppliance(c echo.Context) error {
    ctx := c.Request().Context()
    a, err := h.ApplianceRepo.GetByID(ctx, c.Param("id"))
    if err != nil {
        if err == repository.ErrApplianceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appliance not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if err := h.ApplianceRepo.Delete(ctx, a.ID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appliance not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    views := childViews()
    h.recordChanged("appliances", "deleted", a.ID, a.RoomID, views)
    return c.JSON(http.StatusOK, echo.Map{"invalidated": views})
}
