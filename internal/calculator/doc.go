// Package calculator implements the settlement engine.
//
// ComputeBalances folds expenses into net balances, Settle turns balances into
// payments using greedy largest-creditor/largest-debtor matching, and
// ArchiveJourney snapshots both into a Journey. Everything here is pure and
// safe for concurrent use; persistence belongs to the storage package.
package calculator
