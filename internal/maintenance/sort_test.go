package maintenance

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/home-inventory/internal/model"
)

func enriched(id string, due *time.Time, overdue bool) model.EnrichedTask {
    return model.EnrichedTask{
        MaintenanceTask: model.MaintenanceTask{ID: id, TaskName: id},
        DueDate:         due,
        IsOverdue:       overdue,
    }
}

func ids(tasks []model.EnrichedTask) []string {
    out := make([]string, len(tasks))
    for i, t := range tasks {
        out[i] = t.ID
    }
    return out
}

func TestSortByUrgency_OverdueFirst(t *testing.T) {
    in := []model.EnrichedTask{
        enriched("upcoming", ptr(date(2024, time.March, 1)), false),
        enriched("none", nil, false),
        enriched("overdue", ptr(date(2024, time.January, 1)), true),
    }
    got := SortByUrgency(in)
    assert.Equal(t, []string{"overdue", "upcoming", "none"}, ids(got))
}

func TestSortByUrgency_AscendingDueDates(t *testing.T) {
    in := []model.EnrichedTask{
        enriched("march", ptr(date(2024, time.March, 1)), false),
        enriched("january", ptr(date(2024, time.January, 1)), false),
        enriched("february", ptr(date(2024, time.February, 1)), false),
    }
    got := SortByUrgency(in)
    assert.Equal(t, []string{"january", "february", "march"}, ids(got))
}

func TestSortByUrgency_PartitionInvariant(t *testing.T) {
    // Every overdue task lands before every non-overdue task no matter
    // the input order.
    orders := [][]model.EnrichedTask{
        {
            enriched("a", ptr(date(2024, time.May, 1)), false),
            enriched("b", ptr(date(2024, time.January, 1)), true),
            enriched("c", nil, false),
            enriched("d", ptr(date(2024, time.February, 1)), true),
        },
        {
            enriched("d", ptr(date(2024, time.February, 1)), true),
            enriched("c", nil, false),
            enriched("b", ptr(date(2024, time.January, 1)), true),
            enriched("a", ptr(date(2024, time.May, 1)), false),
        },
    }
    for _, in := range orders {
        got := SortByUrgency(in)
        require.Len(t, got, 4)
        lastOverdue := -1
        firstUpcoming := len(got)
        for i, task := range got {
            if task.IsOverdue {
                lastOverdue = i
            } else if i < firstUpcoming {
                firstUpcoming = i
            }
        }
        assert.Less(t, lastOverdue, firstUpcoming, "overdue group must precede the rest")
    }
}

func TestSortByUrgency_NullDatesLastAndStable(t *testing.T) {
    in := []model.EnrichedTask{
        enriched("n1", nil, false),
        enriched("dated", ptr(date(2024, time.June, 1)), false),
        enriched("n2", nil, false),
        enriched("n3", nil, false),
    }
    got := SortByUrgency(in)
    // Dated before undated; undated keep their input order.
    assert.Equal(t, []string{"dated", "n1", "n2", "n3"}, ids(got))
}

func TestSortByUrgency_DoesNotMutateInput(t *testing.T) {
    in := []model.EnrichedTask{
        enriched("z", nil, false),
        enriched("a", ptr(date(2024, time.January, 1)), true),
    }
    _ = SortByUrgency(in)
    assert.Equal(t, []string{"z", "a"}, ids(in))
}
