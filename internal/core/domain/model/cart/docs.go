// Package cart implements the draft shopping cart aggregate for a station.
// A station keeps at most one cart in Draft status at a time; lines are
// upserted per (product, supplier) pair, and checkout moves the cart to
// Processed exactly once, linking it to the master order it produced.
// Carts are never deleted, only superseded by a new draft.
package cart
