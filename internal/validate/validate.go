// Package validate turns raw form/JSON payloads into typed input
// structs.  Each Decode returns either a fully typed input or a
// ValidationErrors value listing every failed field, so record
// handlers share one uniform decode step instead of ad-hoc checks.
package validate

import (
    "strings"
    "time"

    "github.com/iliyamo/home-inventory/internal/model"
)

// FieldError describes one failed field with a user-facing message.
type FieldError struct {
    Field   string `json:"field"`
    Message string `json:"message"`
}

// ValidationErrors aggregates field-level failures.  It satisfies the
// error interface so handlers can branch on it with errors.As.
type ValidationErrors []FieldError

// Error returns the first field message; enough for the single-message
// error body the API responds with.
func (v ValidationErrors) Error() string {
    if len(v) == 0 {
        return "validation error"
    }
    return v[0].Message
}

// RoomForm is the raw payload for creating or updating a room.
type RoomForm struct {
    Name        string `json:"name" form:"name"`
    Description string `json:"description" form:"description"`
    Icon        string `json:"icon" form:"icon"`
}

// RoomInput is the validated equivalent of RoomForm.
type RoomInput struct {
    Name        string
    Description *string
    Icon        *string
}

// Decode validates the form and returns typed input or the list of
// field failures.
func (f RoomForm) Decode() (RoomInput, error) {
    var errs ValidationErrors
    name := required(&errs, "name", f.Name, 100, "Name is required", "Name is too long")
    desc := optional(&errs, "description", f.Description, 500, "Description is too long")

    icon := strings.TrimSpace(f.Icon)
    if icon == "" {
        icon = "default"
    }
    if !contains(model.RoomIcons, icon) {
        errs = append(errs, FieldError{Field: "icon", Message: "Invalid icon"})
    }

    if len(errs) > 0 {
        return RoomInput{}, errs
    }
    return RoomInput{Name: name, Description: desc, Icon: &icon}, nil
}

// ManualForm is the raw metadata payload for a manual.  The file part
// of a multipart upload is handled separately by the handler.
type ManualForm struct {
    Title       string `json:"title" form:"title"`
    Description string `json:"description" form:"description"`
}

// ManualInput is the validated equivalent of ManualForm.
type ManualInput struct {
    Title       string
    Description *string
}

func (f ManualForm) Decode() (ManualInput, error) {
    var errs ValidationErrors
    title := required(&errs, "title", f.Title, 200, "Title is required", "Title is too long")
    desc := optional(&errs, "description", f.Description, 500, "Description is too long")
    if len(errs) > 0 {
        return ManualInput{}, errs
    }
    return ManualInput{Title: title, Description: desc}, nil
}

// ApplianceForm is the raw payload for an appliance.  Dates arrive as
// YYYY-MM-DD strings, matching the original form fields.
type ApplianceForm struct {
    Name               string `json:"name" form:"name"`
    Brand              string `json:"brand" form:"brand"`
    ModelNumber        string `json:"model_number" form:"model_number"`
    SerialNumber       string `json:"serial_number" form:"serial_number"`
    PurchaseDate       string `json:"purchase_date" form:"purchase_date"`
    WarrantyExpiration string `json:"warranty_expiration" form:"warranty_expiration"`
    Notes              string `json:"notes" form:"notes"`
}

// ApplianceInput is the validated equivalent of ApplianceForm.
type ApplianceInput struct {
    Name               string
    Brand              *string
    ModelNumber        *string
    SerialNumber       *string
    PurchaseDate       *time.Time
    WarrantyExpiration *time.Time
    Notes              *string
}

func (f ApplianceForm) Decode() (ApplianceInput, error) {
    var errs ValidationErrors
    in := ApplianceInput{
        Name:         required(&errs, "name", f.Name, 100, "Name is required", "Name is too long"),
        Brand:        optional(&errs, "brand", f.Brand, 100, "Brand is too long"),
        ModelNumber:  optional(&errs, "model_number", f.ModelNumber, 100, "Model number is too long"),
        SerialNumber: optional(&errs, "serial_number", f.SerialNumber, 100, "Serial number is too long"),
        Notes:        optional(&errs, "notes", f.Notes, 1000, "Notes are too long"),
    }
    in.PurchaseDate = optionalDate(&errs, "purchase_date", f.PurchaseDate, "Invalid purchase date")
    in.WarrantyExpiration = optionalDate(&errs, "warranty_expiration", f.WarrantyExpiration, "Invalid warranty expiration")
    if len(errs) > 0 {
        return ApplianceInput{}, errs
    }
    return in, nil
}

// MaintenanceForm is the raw payload for a maintenance task.
type MaintenanceForm struct {
    TaskName    string `json:"task_name" form:"task_name"`
    Description string `json:"description" form:"description"`
    Frequency   string `json:"frequency" form:"frequency"`
}

// MaintenanceInput is the validated equivalent of MaintenanceForm.
type MaintenanceInput struct {
    TaskName    string
    Description *string
    Frequency   string
}

func (f MaintenanceForm) Decode() (MaintenanceInput, error) {
    var errs ValidationErrors
    name := required(&errs, "task_name", f.TaskName, 100, "Task name is required", "Task name is too long")
    desc := optional(&errs, "description", f.Description, 500, "Description is too long")

    freq := strings.TrimSpace(f.Frequency)
    if freq == "" {
        freq = model.FrequencyMonthly
    }
    if !contains(model.MaintenanceFrequencies, freq) {
        errs = append(errs, FieldError{Field: "frequency", Message: "Invalid frequency"})
    }

    if len(errs) > 0 {
        return MaintenanceInput{}, errs
    }
    return MaintenanceInput{TaskName: name, Description: desc, Frequency: freq}, nil
}

// required trims the value and records a failure when it is empty or
// longer than max runes.
func required(errs *ValidationErrors, field, value string, max int, emptyMsg, longMsg string) string {
    v := strings.TrimSpace(value)
    if v == "" {
        *errs = append(*errs, FieldError{Field: field, Message: emptyMsg})
        return v
    }
    if len([]rune(v)) > max {
        *errs = append(*errs, FieldError{Field: field, Message: longMsg})
    }
    return v
}

// optional trims the value and returns nil for an empty string so the
// column stays NULL, recording a failure when the value is too long.
func optional(errs *ValidationErrors, field, value string, max int, longMsg string) *string {
    v := strings.TrimSpace(value)
    if v == "" {
        return nil
    }
    if len([]rune(v)) > max {
        *errs = append(*errs, FieldError{Field: field, Message: longMsg})
    }
    return &v
}

// optionalDate parses an optional YYYY-MM-DD value.
func optionalDate(errs *ValidationErrors, field, value, badMsg string) *time.Time {
    v := strings.TrimSpace(value)
    if v == "" {
        return nil
    }
    t, err := time.Parse("2006-01-02", v)
    if err != nil {
        *errs = append(*errs, FieldError{Field: field, Message: badMsg})
        return nil
    }
    return &t
}

func contains(list []string, v string) bool {
    for _, s := range list {
        if s == v {
            return true
        }
    }
    return false
}
