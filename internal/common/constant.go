package common

// Cache slot names. They match the keys the browser client used so an export
// of its local storage can be loaded as-is.
const (
	SlotContacts  = "contacts"
	SlotFavorites = "favcontacts"
)

// PhoneNumberConstraint is the server-side unique constraint on phone numbers.
const PhoneNumberConstraint = "phone_number_key"
