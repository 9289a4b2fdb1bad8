package config

import (
	"errors"
	"log"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedSampleCatalog seeds a small demo catalog and member list.
// Rows that already exist (by unique key) are left untouched.
func SeedSampleCatalog(db *gorm.DB) error {
	authors, err := seedAuthors(db)
	if err != nil {
		return err
	}

	categories, err := seedCategories(db)
	if err != nil {
		return err
	}

	if err := seedBooks(db, authors, categories); err != nil {
		return err
	}

	if err := seedMembers(db); err != nil {
		return err
	}

	log.Println("✅ Sample catalog seeded successfully")
	return nil
}

func seedAuthors(db *gorm.DB) (map[string]uint, error) {
	authors := []models.Author{
		{Name: "Ursula K. Le Guin", Biography: "American author of speculative fiction."},
		{Name: "Italo Calvino", Biography: "Italian journalist and writer of short stories and novels."},
		{Name: "Octavia E. Butler", Biography: "American science fiction author."},
	}

	ids := make(map[string]uint, len(authors))
	for _, a := range authors {
		var existing models.Author
		err := db.Where("name = ?", a.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&a).Error; err != nil {
				return nil, err
			}
			log.Printf("   Created author: %s", a.Name)
			ids[a.Name] = a.ID
			continue
		}
		if err != nil {
			return nil, err
		}
		ids[a.Name] = existing.ID
	}
	return ids, nil
}

func seedCategories(db *gorm.DB) (map[string]models.Category, error) {
	categories := []models.Category{
		{Name: "Science Fiction", Description: "Speculative stories built on science and technology."},
		{Name: "Fantasy", Description: "Stories set in invented worlds."},
		{Name: "Literary Fiction", Description: "Character driven fiction."},
	}

	byName := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		var existing models.Category
		err := db.Where("name = ?", c.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				return nil, err
			}
			log.Printf("   Created category: %s", c.Name)
			byName[c.Name] = c
			continue
		}
		if err != nil {
			return nil, err
		}
		byName[c.Name] = existing
	}
	return byName, nil
}

func seedBooks(db *gorm.DB, authors map[string]uint, categories map[string]models.Category) error {
	year := func(y int) *int { return &y }

	books := []struct {
		book       models.Book
		author     string
		categories []string
	}{
		{
			book:       models.Book{Title: "The Left Hand of Darkness", ISBN: "9780441478125", PublicationYear: year(1969)},
			author:     "Ursula K. Le Guin",
			categories: []string{"Science Fiction"},
		},
		{
			book:       models.Book{Title: "A Wizard of Earthsea", ISBN: "9780553383041", PublicationYear: year(1968)},
			author:     "Ursula K. Le Guin",
			categories: []string{"Fantasy"},
		},
		{
			book:       models.Book{Title: "Invisible Cities", ISBN: "9780156453806", PublicationYear: year(1972)},
			author:     "Italo Calvino",
			categories: []string{"Literary Fiction", "Fantasy"},
		},
		{
			book:       models.Book{Title: "Kindred", ISBN: "9780807083697", PublicationYear: year(1979)},
			author:     "Octavia E. Butler",
			categories: []string{"Science Fiction", "Literary Fiction"},
		},
	}

	for _, b := range books {
		var count int64
		if err := db.Model(&models.Book{}).Where("isbn = ?", b.book.ISBN).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		book := b.book
		book.AuthorID = authors[b.author]
		for _, name := range b.categories {
			book.Categories = append(book.Categories, categories[name])
		}
		if err := db.Omit("Author", "Categories.*").Create(&book).Error; err != nil {
			return err
		}
		log.Printf("   Created book: %s", book.Title)
	}
	return nil
}

func seedMembers(db *gorm.DB) error {
	members := []models.Member{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "+44 20 7946 0001"},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Phone: "+44 20 7946 0002"},
	}

	for _, m := range members {
		var count int64
		if err := db.Model(&models.Member{}).Where("email = ?", m.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
		log.Printf("   Created member: %s", m.FullName())
	}
	return nil
}
