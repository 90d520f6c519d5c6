package domain

const (
	DefaultATMName = "ATM"
	DefaultATMBank = "Unknown Bank"
)

// A single ATM returned by a nearby query.
// Name and Bank are never empty: missing tags fall back to the defaults.
type ATM struct {
	Location Coordinates
	Name     string
	Bank     string
}

// NewATM builds an ATM, applying the defaults for missing tags.
func NewATM(loc Coordinates, name, bank string) ATM {
	if name == "" {
		name = DefaultATMName
	}
	if bank == "" {
		bank = DefaultATMBank
	}
	return ATM{Location: loc, Name: name, Bank: bank}
}
