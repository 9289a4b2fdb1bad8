package models

import (
	"time"

	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Staff
// ============================================================

// Librarian represents librarians table
type Librarian struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'LIBRARIAN'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Librarian) TableName() string {
	return "librarians"
}

// IsAdmin reports whether the librarian has the ADMIN role
func (l *Librarian) IsAdmin() bool {
	return l.Role == string(domain.RoleAdmin)
}

// ============================================================
// Catalog
// ============================================================

// Author represents authors table
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:150;not null" json:"name"`
	Biography string    `gorm:"type:text" json:"biography"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

// Category represents categories table
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Book represents books table.
// Borrow records reference the book by book_id; there is no owned collection here.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null;index" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	ImgURL          string    `gorm:"size:500" json:"img_url"`
	ISBN            string    `gorm:"column:isbn;uniqueIndex;size:20;not null" json:"isbn"`
	PublicationYear *int      `gorm:"index" json:"publication_year"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Author     *Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Categories []Category `gorm:"many2many:book_categories;" json:"categories"`
}

func (Book) TableName() string {
	return "books"
}

// BookResponse DTO
type BookResponse struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	ImgURL          string             `json:"img_url"`
	ISBN            string             `json:"isbn"`
	PublicationYear *int               `json:"publication_year"`
	Author          *AuthorSummary     `json:"author"`
	Categories      []*CategorySummary `json:"categories"`
	Available       bool               `json:"available"`
	CreatedAt       time.Time          `json:"created_at"`
}

// AuthorSummary is the author embedded in a book response
type AuthorSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategorySummary is a category embedded in a book response
type CategorySummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToResponse builds the API shape of a book. available is derived by the caller.
func (b *Book) ToResponse(available bool) *BookResponse {
	resp := &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		ImgURL:          b.ImgURL,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Categories:      make([]*CategorySummary, 0, len(b.Categories)),
		Available:       available,
		CreatedAt:       b.CreatedAt,
	}
	if b.Author != nil {
		resp.Author = &AuthorSummary{ID: b.Author.ID, Name: b.Author.Name}
	}
	for _, c := range b.Categories {
		resp.Categories = append(resp.Categories, &CategorySummary{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
		})
	}
	return resp
}

// ============================================================
// Membership
// ============================================================

// Member represents members table
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Phone     string    `gorm:"uniqueIndex;size:30;not null" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// FullName returns "first last"
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// MemberResponse DTO
type MemberResponse struct {
	ID              uint      `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CurrentBorrows  []uint    `json:"current_borrows"`
	HasOverdueBooks bool      `json:"has_overdue_books"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse builds the API shape of a member from its borrow records
func (m *Member) ToResponse(records BorrowRecords, now time.Time) *MemberResponse {
	current := records.Current()
	ids := make([]uint, 0, len(current))
	for _, r := range current {
		ids = append(ids, r.ID)
	}
	return &MemberResponse{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Phone:           m.Phone,
		CurrentBorrows:  ids,
		HasOverdueBooks: records.AnyOverdue(now),
		CreatedAt:       m.CreatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Librarian{},
		&Author{},
		&Category{},
		&Book{},
		&Member{},
		&BorrowRecord{},
	)
}
