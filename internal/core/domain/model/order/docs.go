// Package order provides the Order aggregate of the dispatch service: an item with a
// weight, a region and delivery-hour windows that moves through an assignment
// lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, delivery constraints, the assigned
//     courier, the salary coefficient snapshot and the delivery timing
//   - Status: the lifecycle state derived from the assignment and completion times
//
// Key business rules:
//   - Order status follows Created -> Assigned -> Completed
//   - An assigned order that is not completed may be released back to Created
//   - A completed order is terminal
//   - The salary coefficient is captured when the order is assigned and is not
//     affected by later changes to the courier
//   - The completion time must be strictly after the assignment time
package order
