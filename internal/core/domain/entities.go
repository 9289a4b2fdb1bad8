package domain

// Role represents a librarian role in the system
type Role string

const (
	RoleLibrarian Role = "LIBRARIAN"
	RoleAdmin     Role = "ADMIN"
)

// BorrowStatus is the state of a borrow record.
// BORROWED -> RETURNED is the only transition; RETURNED is terminal.
type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "BORROWED"
	StatusReturned BorrowStatus = "RETURNED"
)

// Valid reports whether s is a known status
func (s BorrowStatus) Valid() bool {
	return s == StatusBorrowed || s == StatusReturned
}

// DefaultBorrowDays is the loan period when the caller does not supply one
const DefaultBorrowDays = 14

// Entity names used in error reporting
const (
	EntityBook      = "Book"
	EntityAuthor    = "Author"
	EntityCategory  = "Category"
	EntityMember    = "Member"
	EntityBorrow    = "BorrowedBook"
	EntityLibrarian = "Librarian"
)
