// Package models defines the core domain models for SettleUp.
//
// # Ledger
//
// Every record is scoped to a ledger owner (UserID), which is the identity a
// device bootstraps with. The active ledger of an owner is made of:
//   - Person: someone expenses can be paid by or shared with, identified by name
//   - Group: a reusable list of member names
//   - Expense: an immutable record of who paid how much for whom
//
// # Derived values
//
//   - Transaction: one payment of a settlement plan ("B pays A 50.00")
//   - Journey: an immutable snapshot of a ledger taken when it is archived
//   - ArchivePlan: a Journey plus the exact store mutation that must accompany it
//
// Amounts are money.Cents throughout. Models carry no persistence or wire
// concerns; the storage and service layers translate them.
package models
