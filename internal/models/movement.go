package models

import "time"

type MovementKind string

const (
	MovementInbound     MovementKind = "inbound"     // new stock entering the central warehouse
	MovementOutbound    MovementKind = "outbound"    // stock leaving the system
	MovementConsumption MovementKind = "consumption" // table order fulfillment at a location
	MovementSupply      MovementKind = "supply"      // central -> local transfer
)

// EndpointCentral is the origin/destination label for the central warehouse.
const EndpointCentral = "central"

// Movement is one append-only ledger entry. Movements are never mutated or
// deleted; every quantity change to a product is paired with exactly one
// movement recording it.
type Movement struct {
	ID          string       `json:"id"`
	Kind        MovementKind `json:"kind"`
	ProductID   string       `json:"product_id"`
	Quantity    float64      `json:"quantity"` // always positive
	Origin      string       `json:"origin,omitempty"`
	Destination string       `json:"destination,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	TableNumber int          `json:"table_number,omitempty"`
}
