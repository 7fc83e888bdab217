package domain

// Address label constants.
const (
	LabelHome  = "home"
	LabelWork  = "work"
	LabelOther = "other"
)

// Address modes within a checkout session: shipping to a saved address or to
// one entered in this session.
const (
	AddressModeSaved = "saved"
	AddressModeNew   = "new"
)

// Address is a delivery address. A persisted address carries an ID assigned by
// the backend; a draft has none and lives only inside the current session
// unless the user opts to save it.
type Address struct {
	ID        string `json:"id,omitempty"`
	Label     string `json:"label,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// Complete reports whether the address is usable as a shipping target.
// Street, city, pincode and phone are all required; state and label are not.
func (a *Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.Pincode != "" && a.Phone != ""
}

// IsDraft reports whether this address was entered in the current session and
// has not been persisted to the user's profile.
func (a *Address) IsDraft() bool {
	return a.ID == ""
}

// IsValidLabel checks whether the given label is one of home/work/other.
func IsValidLabel(label string) bool {
	return label == LabelHome || label == LabelWork || label == LabelOther
}
