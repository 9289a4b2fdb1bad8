package handlers

import (
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// ListMembers lists members
// @Summary List members
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.memberService.List(c.Context(), params)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Members retrieved successfully", pagination.NewResponse(members, params, total))
}

// SearchMembers finds members by name or exact email
// @Summary Search members
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param q query string true "Name fragment or email"
// @Success 200 {object} response.Response
// @Router /members/search [get]
func (h *MemberHandler) SearchMembers(c *fiber.Ctx) error {
	members, err := h.memberService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{"members": members})
}

// GetMember gets a member by ID
// @Summary Get member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	member, err := h.memberService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{"member": member})
}

// CreateMember creates a member
// @Summary Create member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MemberInput true "Member"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *fiber.Ctx) error {
	var input services.MemberInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, "Member created successfully", fiber.Map{"member": member})
}

// UpdateMember updates a member
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.MemberInput true "Member"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var input services.MemberInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	member, err := h.memberService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Member updated successfully", fiber.Map{"member": member})
}

// DeleteMember deletes a member with their borrow history
// @Summary Delete member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.memberService.Delete(c.Context(), id); err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Member deleted successfully", nil)
}
