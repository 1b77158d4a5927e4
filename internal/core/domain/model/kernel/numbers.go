package kernel

import (
	"fmt"
	"strings"
	"time"
)

// Document numbering for orders and master orders. Numbers are generated at
// creation time and never reused; uniqueness rides on the embedded UUID
// fragment, the date prefix only exists for human readability.

const (
	orderNumberPrefix     = "PO"
	masterReferencePrefix = "MO"
)

// NewOrderNumber generates a unique purchase-order number, e.g.
// "PO-20260830-1B9F0C3A".
func NewOrderNumber() string {
	return newDocumentNumber(orderNumberPrefix)
}

// NewMasterReference generates a unique master-order reference, e.g.
// "MO-20260830-7D24A90B".
func NewMasterReference() string {
	return newDocumentNumber(masterReferencePrefix)
}

func newDocumentNumber(prefix string) string {
	id := NewUUID().String()
	fragment := strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), fragment)
}
