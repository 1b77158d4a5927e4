// Package masterorder contains the MasterOrder aggregate, the station-facing
// umbrella over the purchase orders produced by one cart checkout.
//
// A master order does not run a lifecycle of its own. Its status is derived
// from the statuses of its child purchase orders and cached for listing;
// AggregateStatus is the single derivation rule, and callers refresh the
// cache whenever a child changes or drift is observed.
package masterorder
