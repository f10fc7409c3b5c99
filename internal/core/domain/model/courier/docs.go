// Package courier provides the Courier aggregate of the dispatch service together
// with the fixed per-type profile table.
//
// The package includes:
//   - Courier: the aggregate root that owns the courier profile (type, regions and
//     working hours) and the delivery statistics (rating, earnings, fastest average
//     delivery time)
//   - Type and Profile: the enumerated courier type and its carrying capacity and
//     salary coefficient
//
// Key business rules:
//   - A courier can take an order when the order region is one of its regions, the
//     order weight fits its capacity and any working interval overlaps any delivery
//     interval of the order
//   - Earnings never decrease
//   - The fastest average delivery time never increases once set, and the rating is
//     recomputed only when it improves
//   - The rating is in 0..5 with two decimal places and is unset until the first
//     completed delivery
package courier
