package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/home-inventory/internal/handler" // import the handlers that implement the record services
)

// RegisterRoutes registers the health check on the provided Echo
// instance.  Load balancers and monitoring systems use /healthz to
// verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterInventory registers every record-service route under /v1.
// There is no authentication: this is a single-user home service, and
// every route is public.
func RegisterInventory(e *echo.Echo, h *handler.InventoryHandler) {
	v1 := e.Group("/v1")

	// Rooms.  The list supports ?q= substring search on the name.
	v1.POST("/rooms", h.CreateRoom)
	v1.GET("/rooms", h.ListRooms)
	v1.GET("/rooms/:id", h.GetRoom)
	v1.PUT("/rooms/:id", h.UpdateRoom)
	v1.DELETE("/rooms/:id", h.DeleteRoom)

	// Manuals: metadata CRUD nested under the room for creation and
	// listing, flat for single-record operations.  Uploads are
	// multipart; /v1/files serves the stored bytes.
	v1.POST("/rooms/:id/manuals", h.CreateManual)
	v1.GET("/rooms/:id/manuals", h.ListManuals)
	v1.GET("/manuals/:id", h.GetManual)
	v1.PUT("/manuals/:id", h.UpdateManual)
	v1.DELETE("/manuals/:id", h.DeleteManual)
	v1.GET("/files/:id", h.DownloadManual)

	// Appliances.
	v1.POST("/rooms/:id/appliances", h.CreateAppliance)
	v1.GET("/rooms/:id/appliances", h.ListAppliances)
	v1.GET("/appliances/:id", h.GetAppliance)
	v1.PUT("/appliances/:id", h.UpdateAppliance)
	v1.DELETE("/appliances/:id", h.DeleteAppliance)

	// Maintenance tasks.  /v1/maintenance is the whole-home list,
	// sorted by urgency; completing a task shifts its due date.
	v1.POST("/rooms/:id/maintenance", h.CreateMaintenanceTask)
	v1.GET("/rooms/:id/maintenance", h.ListRoomMaintenance)
	v1.GET("/maintenance", h.ListAllMaintenance)
	v1.GET("/maintenance/:id", h.GetMaintenanceTask)
	v1.PUT("/maintenance/:id", h.UpdateMaintenanceTask)
	v1.POST("/maintenance/:id/complete", h.CompleteMaintenanceTask)
	v1.DELETE("/maintenance/:id", h.DeleteMaintenanceTask)

	// Full-dataset snapshot, metadata only.
	v1.GET("/export", h.ExportAll)
}
