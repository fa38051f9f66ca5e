package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// Balance is one person's net position.
// Positive = is owed money, negative = owes money.
type Balance struct {
	Person string
	Amount decimal.Decimal
}

// Balances is an ordered mapping from person to exact net balance.
// Iteration order is first-seen order: listed persons first, then anyone
// referenced by an expense in the order they were encountered.
type Balances struct {
	order  []string
	index  map[string]int
	values []decimal.Decimal
}

// NewBalances returns balances with a zero entry for every listed person.
func NewBalances(persons []string) *Balances {
	b := &Balances{
		order:  make([]string, 0, len(persons)),
		index:  make(map[string]int, len(persons)),
		values: make([]decimal.Decimal, 0, len(persons)),
	}
	for _, p := range persons {
		b.slot(p)
	}
	return b
}

// slot returns the position of person, adding a zero entry on first sight.
func (b *Balances) slot(person string) int {
	if i, ok := b.index[person]; ok {
		return i
	}
	i := len(b.order)
	b.index[person] = i
	b.order = append(b.order, person)
	b.values = append(b.values, decimal.Zero)
	return i
}

func (b *Balances) add(person string, delta decimal.Decimal) {
	i := b.slot(person)
	b.values[i] = b.values[i].Add(delta)
}

// Get returns the balance of person and whether they are known.
func (b *Balances) Get(person string) (decimal.Decimal, bool) {
	i, ok := b.index[person]
	if !ok {
		return decimal.Zero, false
	}
	return b.values[i], true
}

// Len returns the number of known persons.
func (b *Balances) Len() int {
	return len(b.order)
}

// Entries returns the balances in first-seen order.
func (b *Balances) Entries() []Balance {
	entries := make([]Balance, len(b.order))
	for i, p := range b.order {
		entries[i] = Balance{Person: p, Amount: b.values[i]}
	}
	return entries
}

// Sum returns the exact total of all balances. It is zero for any ledger of
// valid expenses.
func (b *Balances) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b.values {
		total = total.Add(v)
	}
	return total
}

// ComputeBalances folds expenses into net balances.
//
// Every listed person starts at zero. For each expense the payer is credited
// the full amount and each beneficiary is debited their share: amount/n for
// equal splits (exact decimal division, never rounded here), or Splits[p] for
// unequal splits where a missing entry counts as zero. An unequal expense
// with nil Splits is divided equally. The result does not
// depend on the order of expenses.
func ComputeBalances(persons []string, expenses []models.Expense) *Balances {
	b := NewBalances(persons)
	for _, e := range expenses {
		b.apply(e)
	}
	return b
}

func (b *Balances) apply(e models.Expense) {
	amount := e.Amount.Decimal()
	b.add(e.Payer, amount)

	beneficiaries := uniqueNames(e.Beneficiaries)
	if e.SplitType == models.SplitUnequal && e.Splits != nil {
		for _, p := range beneficiaries {
			b.add(p, e.Splits[p].Decimal().Neg())
		}
		return
	}

	// Unknown split types and unequal records without splits fall back to equal.
	if len(beneficiaries) == 0 {
		return
	}
	share := amount.Div(decimal.NewFromInt(int64(len(beneficiaries))))
	for _, p := range beneficiaries {
		b.add(p, share.Neg())
	}
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
