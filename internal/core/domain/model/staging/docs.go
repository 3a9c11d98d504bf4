// Package staging models the physical staging area between packing and
// carrier pickup.
//
// An Area has a finite number of order slots; an Assignment links one order
// to its occupancy of an area. Both the fulfillment pipeline and the
// background staging monitor mutate these records, so the state-changing
// transitions are also guarded with conditional updates at the store layer.
package staging
