package maintenance

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/home-inventory/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestComputeDueDate_OneTime(t *testing.T) {
    created := date(2024, time.May, 1)

    due := ComputeDueDate(model.FrequencyOneTime, nil, created)
    require.NotNil(t, due)
    assert.True(t, due.Equal(created), "a never-completed one-time task is due at creation")

    done := date(2024, time.June, 3)
    assert.Nil(t, ComputeDueDate(model.FrequencyOneTime, &done, created),
        "a completed one-time task has no further occurrence")
}

func TestComputeDueDate_Recurring(t *testing.T) {
    created := date(2024, time.January, 1)

    tests := []struct {
        name          string
        frequency     string
        lastCompleted *time.Time
        want          time.Time
    }{
        {"weekly from creation", model.FrequencyWeekly, nil, date(2024, time.January, 8)},
        {"weekly from completion", model.FrequencyWeekly, ptr(date(2024, time.March, 10)), date(2024, time.March, 17)},
        {"monthly from creation", model.FrequencyMonthly, nil, date(2024, time.February, 1)},
        {"monthly from completion", model.FrequencyMonthly, ptr(date(2024, time.April, 15)), date(2024, time.May, 15)},
        {"yearly from creation", model.FrequencyYearly, nil, date(2025, time.January, 1)},
        {"yearly from completion", model.FrequencyYearly, ptr(date(2024, time.July, 4)), date(2025, time.July, 4)},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            got := ComputeDueDate(tc.frequency, tc.lastCompleted, created)
            require.NotNil(t, got)
            assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
        })
    }
}

func TestComputeDueDate_CalendarClamping(t *testing.T) {
    // Completing a monthly task on Jan 31 2024 must land on Feb 29
    // (leap year), not overflow into March.
    created := date(2024, time.January, 31)
    completed := date(2024, time.January, 31)
    due := ComputeDueDate(model.FrequencyMonthly, &completed, created)
    require.NotNil(t, due)
    assert.True(t, due.Equal(date(2024, time.February, 29)), "got %v", due)

    // Same task in a non-leap year clamps to Feb 28.
    completed = date(2025, time.January, 31)
    due = ComputeDueDate(model.FrequencyMonthly, &completed, created)
    require.NotNil(t, due)
    assert.True(t, due.Equal(date(2025, time.February, 28)), "got %v", due)

    // A yearly task based on Feb 29 clamps to Feb 28 the next year.
    completed = date(2024, time.February, 29)
    due = ComputeDueDate(model.FrequencyYearly, &completed, created)
    require.NotNil(t, due)
    assert.True(t, due.Equal(date(2025, time.February, 28)), "got %v", due)
}

func TestComputeDueDate_AdvancesByOneInterval(t *testing.T) {
    created := date(2023, time.November, 5)
    for _, freq := range []string{model.FrequencyWeekly, model.FrequencyMonthly, model.FrequencyYearly} {
        due := ComputeDueDate(freq, nil, created)
        require.NotNil(t, due, freq)
        assert.True(t, due.After(created), "%s due date must be strictly later than its base", freq)
    }
}

func TestComputeDueDate_UnknownFrequency(t *testing.T) {
    assert.Nil(t, ComputeDueDate("fortnightly", nil, date(2024, time.January, 1)))
}

func TestIsOverdue(t *testing.T) {
    now := date(2024, time.February, 15)

    assert.False(t, IsOverdue(nil, now), "nil due date is never overdue")
    assert.True(t, IsOverdue(ptr(date(2024, time.February, 1)), now))
    assert.False(t, IsOverdue(ptr(date(2024, time.March, 1)), now))
    assert.False(t, IsOverdue(ptr(now), now), "strictly before: due exactly now is not overdue")
}

func TestEnrich_MonthlyScenario(t *testing.T) {
    // Task created 2024-01-01, monthly, never completed: due 2024-02-01
    // and overdue when viewed on 2024-02-15.
    task := model.MaintenanceTask{
        ID:        "t1",
        TaskName:  "change hvac filter",
        Frequency: model.FrequencyMonthly,
        CreatedAt: date(2024, time.January, 1),
    }
    got := Enrich(task, date(2024, time.February, 15))
    require.NotNil(t, got.DueDate)
    assert.True(t, got.DueDate.Equal(date(2024, time.February, 1)))
    assert.True(t, got.IsOverdue)
}

func TestEnrich_CompletedOneTimeNeverOverdue(t *testing.T) {
    task := model.MaintenanceTask{
        ID:            "t2",
        TaskName:      "mount shelf",
        Frequency:     model.FrequencyOneTime,
        LastCompleted: ptr(date(2024, time.May, 2)),
        CreatedAt:     date(2024, time.May, 1),
    }
    got := Enrich(task, date(2030, time.January, 1))
    assert.Nil(t, got.DueDate)
    assert.False(t, got.IsOverdue)
    assert.True(t, got.Completed())
}
