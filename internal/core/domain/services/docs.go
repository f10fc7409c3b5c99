// Package services provides domain services that work across the Courier and Order
// aggregates of the dispatch service.
//
// The package includes:
//   - OrderMatcher: selects the orders a courier may take and the held orders it has
//     to give back after a profile change
//   - DeliveryTimeCalculator: derives the delivery time of a completed order from the
//     courier's previous completion in the same region
//   - RatingCalculator: folds a completed order into the courier's rating and earnings
//
// The services are stateless and never touch storage; application handlers load the
// aggregates, call the services and persist the result.
package services
