package masterorder

import (
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// AggregateStatus derives a master order's status from its children's
// statuses: the least advanced status among the non-Archived children.
// Archived children are excluded so that archiving one order does not
// drag the umbrella backwards; once every child is Archived, so is the
// master order.
func AggregateStatus(children []order.Status) (order.Status, error) {
	if len(children) == 0 {
		return order.StatusUnknown, errs.NewValueIsRequiredError("child statuses")
	}

	derived := order.StatusUnknown
	for _, status := range children {
		if err := status.Validate(); err != nil {
			return order.StatusUnknown, err
		}
		if status.IsTerminal() {
			continue
		}
		if derived == order.StatusUnknown || status.Before(derived) {
			derived = status
		}
	}

	if derived == order.StatusUnknown {
		return order.StatusArchived, nil
	}
	return derived, nil
}
