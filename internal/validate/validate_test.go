package validate

import (
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestRoomForm_Decode(t *testing.T) {
    in, err := RoomForm{Name: "  Kitchen  ", Description: "", Icon: ""}.Decode()
    require.NoError(t, err)
    assert.Equal(t, "Kitchen", in.Name)
    assert.Nil(t, in.Description, "empty optional becomes nil")
    require.NotNil(t, in.Icon)
    assert.Equal(t, "default", *in.Icon)
}

func TestRoomForm_Decode_Failures(t *testing.T) {
    tests := []struct {
        name string
        form RoomForm
        msg  string
    }{
        {"empty name", RoomForm{Name: "   "}, "Name is required"},
        {"long name", RoomForm{Name: strings.Repeat("a", 101)}, "Name is too long"},
        {"long description", RoomForm{Name: "ok", Description: strings.Repeat("d", 501)}, "Description is too long"},
        {"bad icon", RoomForm{Name: "ok", Icon: "dungeon"}, "Invalid icon"},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            _, err := tc.form.Decode()
            require.Error(t, err)
            assert.Equal(t, tc.msg, err.Error())
        })
    }
}

func TestRoomForm_Decode_CollectsAllFields(t *testing.T) {
    _, err := RoomForm{Name: "", Icon: "castle"}.Decode()
    require.Error(t, err)
    var verrs ValidationErrors
    require.ErrorAs(t, err, &verrs)
    assert.Len(t, verrs, 2)
}

func TestManualForm_Decode(t *testing.T) {
    in, err := ManualForm{Title: "Dishwasher manual", Description: "rev 2"}.Decode()
    require.NoError(t, err)
    assert.Equal(t, "Dishwasher manual", in.Title)
    require.NotNil(t, in.Description)
    assert.Equal(t, "rev 2", *in.Description)

    _, err = ManualForm{Title: strings.Repeat("t", 201)}.Decode()
    require.Error(t, err)
    assert.Equal(t, "Title is too long", err.Error())
}

func TestApplianceForm_Decode_Dates(t *testing.T) {
    in, err := ApplianceForm{
        Name:               "Fridge",
        PurchaseDate:       "2023-06-15",
        WarrantyExpiration: "2025-06-15",
    }.Decode()
    require.NoError(t, err)
    require.NotNil(t, in.PurchaseDate)
    assert.True(t, in.PurchaseDate.Equal(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)))
    require.NotNil(t, in.WarrantyExpiration)

    _, err = ApplianceForm{Name: "Fridge", PurchaseDate: "15/06/2023"}.Decode()
    require.Error(t, err)
    assert.Equal(t, "Invalid purchase date", err.Error())
}

func TestMaintenanceForm_Decode(t *testing.T) {
    in, err := MaintenanceForm{TaskName: "Clean gutters", Frequency: ""}.Decode()
    require.NoError(t, err)
    assert.Equal(t, "monthly", in.Frequency, "frequency defaults to monthly")

    in, err = MaintenanceForm{TaskName: "Replace battery", Frequency: "yearly"}.Decode()
    require.NoError(t, err)
    assert.Equal(t, "yearly", in.Frequency)

    _, err = MaintenanceForm{TaskName: "x", Frequency: "daily"}.Decode()
    require.Error(t, err)
    assert.Equal(t, "Invalid frequency", err.Error())

    _, err = MaintenanceForm{TaskName: ""}.Decode()
    require.Error(t, err)
    assert.Equal(t, "Task name is required", err.Error())
}
