// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Trip: a group event with a base currency and the settings the balance
//     calculation depends on (child factor, rounding rule).
//   - Member: a participant of exactly one trip, weighted by Factor.
//   - Activity: an itinerary entry expenses can optionally be tagged to.
//   - Expense: money one member paid, in any supported currency.
//
// Balances, settlement transactions and statistics are derived on every request
// by the calculator package and are never stored.
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are UUID strings (TripID, PaidBy, ...)
// 2. **Unix timestamps**: all instants are stored as int64 seconds, 0 meaning unset
// 3. **Closed enumerations**: currencies and categories are validated at the edge
package models
