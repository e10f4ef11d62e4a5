package maintenance

import (
    "sort"

    "github.com/iliyamo/home-inventory/internal/model"
)

// SortByUrgency returns the tasks ordered with overdue tasks first,
// then ascending due date, then tasks without a due date.  Tasks
// without a due date keep their relative input order (stable sort).
// The input slice is not modified.
func SortByUrgency(tasks []model.EnrichedTask) []model.EnrichedTask {
    out := make([]model.EnrichedTask, len(tasks))
    copy(out, tasks)
    sort.SliceStable(out, func(i, j int) bool {
        return moreUrgent(out[i], out[j])
    })
    return out
}

// moreUrgent reports whether a sorts strictly before b.  Written as a
// strict comparison so the resulting order is a strict weak ordering:
// overdue before non-overdue, earlier due dates before later ones,
// dated before undated, undated mutually equal.
func moreUrgent(a, b model.EnrichedTask) bool {
    if a.IsOverdue != b.IsOverdue {
        return a.IsOverdue
    }
    switch {
    case a.DueDate != nil && b.DueDate != nil:
        return a.DueDate.Before(*b.DueDate)
    case a.DueDate != nil && b.DueDate == nil:
        return true
    default:
        return false
    }
}
