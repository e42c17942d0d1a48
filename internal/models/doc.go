// Package models defines the core domain models for Splittab.
//
// # Models
//
//   - Expense: a recorded expense with a payer and per-participant owed shares
//   - Group: a named circle of people who share expenses
//   - Friend: a directory entry used to resolve display names for participants
//   - User: a registered account; every stored entity is scoped to its owner
//   - Balance / GroupBalance: derived views, recomputed on every read
//
// # Design Principles
//
//  1. Participant shares stored on an expense are authoritative; the split
//     type tag (equal/custom/percentage) records how the shares were derived
//     but never changes balance computation.
//  2. Display names are snapshotted onto expense participants at write time.
//     Renaming or deleting a friend leaves historical expenses untouched.
//  3. Money is decimal throughout (shopspring/decimal); never float64.
//  4. Balances are never persisted. They are derived from the expense set
//     on demand, so there is no cache to invalidate or drift out of sync.
package models
