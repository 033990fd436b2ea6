package domain

// Portfolio groups trading accounts and holdings of one owner.
type Portfolio struct {
	ID      string
	Name    string
	OwnerID string
}
