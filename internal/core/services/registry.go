package services

import (
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"

	"gorm.io/gorm"
)

// Registry holds the application services, shared by the HTTP routes
// and the background jobs
type Registry struct {
	Store      *repositories.Store
	Auth       *AuthService
	Authors    *AuthorService
	Categories *CategoryService
	Books      *BookService
	Members    *MemberService
	Borrows    *BorrowService
	Dashboard  *DashboardService
	Cron       *CronService
}

// NewRegistry wires every service over db
func NewRegistry(db *gorm.DB, cfg *config.Config) *Registry {
	store := repositories.NewStore(db)
	ledger := NewBorrowService(store, cfg.Borrow)

	return &Registry{
		Store:      store,
		Auth:       NewAuthService(store.Librarians, cfg.JWT),
		Authors:    NewAuthorService(store),
		Categories: NewCategoryService(store),
		Books:      NewBookService(store),
		Members:    NewMemberService(store),
		Borrows:    ledger,
		Dashboard:  NewDashboardService(db, ledger),
		Cron:       NewCronService(ledger, cfg.Borrow.OverdueCron),
	}
}
