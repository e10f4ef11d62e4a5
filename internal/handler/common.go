package handler // handler defines http handlers

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/home-inventory/internal/middleware"
    "github.com/iliyamo/home-inventory/internal/queue"
    "github.com/iliyamo/home-inventory/internal/repository"
    queue_publisher "github.com/iliyamo/home-inventory/internal/service"
    "github.com/iliyamo/home-inventory/internal/storage"
)

// InventoryHandler bundles the repositories, the file store and the
// cache client every record service needs.
type InventoryHandler struct {
    RoomRepo        *repository.RoomRepo        // RoomRepo provides room persistence
    ManualRepo      *repository.ManualRepo      // ManualRepo provides manual metadata persistence
    ApplianceRepo   *repository.ApplianceRepo   // ApplianceRepo provides appliance persistence
    MaintenanceRepo *repository.MaintenanceRepo // MaintenanceRepo provides task persistence
    Store           *storage.Store              // Store holds uploaded manual files
    RDB             *redis.Client               // RDB is the cache client; may be nil
    CachePrefix     string                      // CachePrefix namespaces cached views
}

// NewInventoryHandler constructs an InventoryHandler and panics if any
// required dependency is nil.  The Redis client is optional.
func NewInventoryHandler(rooms *repository.RoomRepo, manuals *repository.ManualRepo,
    appliances *repository.ApplianceRepo, maint *repository.MaintenanceRepo,
    store *storage.Store, rdb *redis.Client, cachePrefix string) *InventoryHandler {
    if rooms == nil || manuals == nil || appliances == nil || maint == nil || store == nil {
        panic("nil dependency passed to NewInventoryHandler")
    }
    return &InventoryHandler{
        RoomRepo:        rooms,
        ManualRepo:      manuals,
        ApplianceRepo:   appliances,
        MaintenanceRepo: maint,
        Store:           store,
        RDB:             rdb,
        CachePrefix:     cachePrefix,
    }
}

// recordChanged is called after every successful mutation.  It drops
// the invalidated views from the local cache synchronously, so the
// caller's next read is fresh even if the broker is down, then
// publishes the change event in the background for other replicas and
// the audit log.  Neither step can fail the request.
func (h *InventoryHandler) recordChanged(entity, action, id, roomID string, views []string) {
    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()
    if err := middleware.InvalidateViews(ctx, h.RDB, h.CachePrefix, views...); err != nil {
        log.Printf("cache: invalidate %v failed: %v", views, err)
    }

    ev := queue.RecordChangedEvent{
        Entity:     entity,
        Action:     action,
        ID:         id,
        RoomID:     roomID,
        Views:      views,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer pcancel()
        _ = queue_publisher.PublishRecordChanged(pctx, ev) // already logged inside
    }()
}

// Views touched by mutations on each record type.  Manuals and
// appliances show up in the room detail and the room list counts;
// maintenance additionally feeds the whole-home task list.
func roomViews() []string {
    return []string{middleware.ViewRooms, middleware.ViewRoomDetail, middleware.ViewMaintenance}
}

func childViews() []string {
    return []string{middleware.ViewRooms, middleware.ViewRoomDetail}
}

func maintenanceViews() []string {
    return []string{middleware.ViewRooms, middleware.ViewRoomDetail, middleware.ViewMaintenance}
}

// badRequest writes a 400 with the given user-facing message.
func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
