// Package kernel provides core domain primitives shared by the courier and order
// aggregates of the dispatch service.
//
// The package includes:
//   - TimeInterval: a same-day HH:MM-HH:MM range with the overlap test used for
//     matching courier working hours against order delivery hours
//   - Weight: an order weight with two-decimal precision and fixed bounds
//
// These primitives are immutable value objects. Their zero values are invalid and
// fail Validate, so they must be built through their constructors.
package kernel
