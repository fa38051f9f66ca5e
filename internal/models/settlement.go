package models

import "github.com/mmynk/settleup/internal/money"

// Transaction is one payment of a settlement plan.
// From owes To the Amount; From never equals To and Amount is always positive.
type Transaction struct {
	// From is the debtor making the payment.
	From string

	// To is the creditor receiving it.
	To string

	// Amount is the payment amount.
	Amount money.Cents
}
