package models

// Person is someone who can pay for or share in an expense.
// The engine identifies people by Name only; ID exists so clients can delete
// a specific entry.
type Person struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt int64
}

// Names returns the names of people in order.
func Names(people []Person) []string {
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}
	return names
}
