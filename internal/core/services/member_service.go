package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// MemberService handles member business logic
type MemberService struct {
	store *repositories.Store
	now   func() time.Time
}

// NewMemberService creates a new member service
func NewMemberService(store *repositories.Store) *MemberService {
	return &MemberService{store: store, now: time.Now}
}

// WithClock replaces the time source used for overdue flags
func (s *MemberService) WithClock(now func() time.Time) *MemberService {
	s.now = now
	return s
}

// MemberInput represents member create/update input
type MemberInput struct {
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,notblank,email,max=150"`
	Phone     string `json:"phone" validate:"required,notblank,max=30"`
}

func (in *MemberInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
}

// toResponses attaches current loans and the overdue flag to each member
func (s *MemberService) toResponses(ctx context.Context, members []*models.Member) ([]*models.MemberResponse, error) {
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	records, err := s.store.Borrows.ListCurrentByMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	byMember := make(map[uint]models.BorrowRecords, len(members))
	for _, r := range records {
		byMember[r.MemberID] = append(byMember[r.MemberID], r)
	}

	now := s.now().UTC()
	out := make([]*models.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, m.ToResponse(byMember[m.ID], now))
	}
	return out, nil
}

func (s *MemberService) toResponse(ctx context.Context, member *models.Member) (*models.MemberResponse, error) {
	out, err := s.toResponses(ctx, []*models.Member{member})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// List lists members with pagination
func (s *MemberService) List(ctx context.Context, params *pagination.Params) ([]*models.MemberResponse, int64, error) {
	members, total, err := s.store.Members.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(ctx, members)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Search finds members by exact email when query looks like one,
// otherwise by first or last name
func (s *MemberService) Search(ctx context.Context, query string) ([]*models.MemberResponse, error) {
	query = strings.TrimSpace(query)

	var members []*models.Member
	if strings.Contains(query, "@") {
		member, err := s.store.Members.GetByEmail(ctx, strings.ToLower(query))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []*models.MemberResponse{}, nil
			}
			return nil, err
		}
		members = append(members, member)
	} else {
		var err error
		members, err = s.store.Members.Search(ctx, query)
		if err != nil {
			return nil, err
		}
	}
	return s.toResponses(ctx, members)
}

// Get gets a member by ID
func (s *MemberService) Get(ctx context.Context, id uint) (*models.MemberResponse, error) {
	member, err := s.store.Members.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.EntityMember, id)
	}
	return s.toResponse(ctx, member)
}

// checkUnique rejects an email or phone already held by another member
func checkUnique(ctx context.Context, tx *repositories.Store, input *MemberInput, excludeID uint) error {
	exists, err := tx.Members.ExistsByEmail(ctx, input.Email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewAlreadyExists(domain.EntityMember, "email", input.Email)
	}

	exists, err = tx.Members.ExistsByPhone(ctx, input.Phone, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewAlreadyExists(domain.EntityMember, "phone", input.Phone)
	}
	return nil
}

// duplicateOr resolves a unique index violation that raced past checkUnique
// to the column that now collides. It reads outside the failed transaction.
func (s *MemberService) duplicateOr(ctx context.Context, err error, input *MemberInput, excludeID uint) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if uerr := checkUnique(ctx, s.store, input, excludeID); uerr != nil {
		return uerr
	}
	return domain.NewAlreadyExists(domain.EntityMember, "email/phone", input.Email+" / "+input.Phone)
}

// Create creates a new member
func (s *MemberService) Create(ctx context.Context, input *MemberInput) (*models.MemberResponse, error) {
	input.normalize()
	member := &models.Member{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := checkUnique(ctx, tx, input, 0); err != nil {
			return err
		}
		return tx.Members.Create(ctx, member)
	})
	if err != nil {
		return nil, s.duplicateOr(ctx, err, input, 0)
	}

	log.Printf("✅ Member created: %s (ID: %d)", member.FullName(), member.ID)
	return member.ToResponse(nil, s.now().UTC()), nil
}

// Update updates a member; changed email and phone must stay unique
func (s *MemberService) Update(ctx context.Context, id uint, input *MemberInput) (*models.MemberResponse, error) {
	input.normalize()

	var member *models.Member
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		member, err = tx.Members.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, domain.EntityMember, id)
		}

		if err := checkUnique(ctx, tx, input, id); err != nil {
			return err
		}

		member.FirstName = input.FirstName
		member.LastName = input.LastName
		member.Email = input.Email
		member.Phone = input.Phone
		return tx.Members.Update(ctx, member)
	})
	if err != nil {
		return nil, s.duplicateOr(ctx, err, input, id)
	}
	return s.toResponse(ctx, member)
}

// Delete deletes a member together with their borrow history
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Members.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.EntityMember, id)
		}
		return tx.Members.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("🗑️ Member deleted (ID: %d)", id)
	return nil
}
