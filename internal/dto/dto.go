// Package dto holds the request payloads for the CRUD surface.
// Update payloads are patch types: every field is optional and Apply
// merges present fields over the stored entity, so partial-update
// semantics live here instead of being scattered through handlers.
package dto

import (
	"review-system-api/internal/models"
)

type RolePayload struct {
	Name string `json:"name" validate:"required"`
}

type CreateRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateRoleRequest struct {
	Name *string `json:"name"`
}

func (r *UpdateRoleRequest) Apply(role *models.Role) {
	if r.Name != nil {
		role.Name = *r.Name
	}
}

type CreateUserRequest struct {
	Username   string        `json:"username" validate:"required"`
	Email      string        `json:"email" validate:"required,email"`
	Password   string        `json:"password" validate:"required"`
	FirstName  string        `json:"first_name"`
	SecondName string        `json:"second_name"`
	Roles      []RolePayload `json:"roles"`
}

type UpdateUserRequest struct {
	Email      *string       `json:"email" validate:"omitempty,email"`
	FirstName  *string       `json:"first_name"`
	SecondName *string       `json:"second_name"`
	IsActive   *bool         `json:"is_active"`
	IsStaff    *bool         `json:"is_staff"`
	Roles      []RolePayload `json:"roles"`
}

func (r *UpdateUserRequest) Apply(user *models.User) {
	if r.Email != nil {
		user.Email = *r.Email
	}
	if r.FirstName != nil {
		user.FirstName = *r.FirstName
	}
	if r.SecondName != nil {
		user.SecondName = *r.SecondName
	}
	if r.IsActive != nil {
		user.IsActive = *r.IsActive
	}
	if r.IsStaff != nil {
		user.IsStaff = *r.IsStaff
	}
}

type CreateTeamRequest struct {
	Name      string `json:"name" validate:"required"`
	MemberIDs []uint `json:"member_ids"`
}

type UpdateTeamRequest struct {
	Name      *string `json:"name"`
	MemberIDs []uint  `json:"member_ids"`
}

func (r *UpdateTeamRequest) Apply(team *models.Team) {
	if r.Name != nil {
		team.Name = *r.Name
	}
}

type CreateAssignmentRequest struct {
	Title                 string `json:"title" validate:"required"`
	Description           string `json:"description"`
	CreatedByID           uint   `json:"created_by_id" validate:"required"`
	IndividualRevieweeIDs []uint `json:"individual_reviewee_ids"`
	TeamRevieweeIDs       []uint `json:"team_reviewee_ids"`
}

type UpdateAssignmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CreatedByID *uint   `json:"created_by_id"`
}

func (r *UpdateAssignmentRequest) Apply(assignment *models.Assignment) {
	if r.Title != nil {
		assignment.Title = *r.Title
	}
	if r.Description != nil {
		assignment.Description = *r.Description
	}
	if r.CreatedByID != nil {
		assignment.CreatedByID = *r.CreatedByID
	}
}

type CreateSubtaskRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date" validate:"required"`
	AssignmentID uint   `json:"assignment_id" validate:"required"`
}

type UpdateSubtaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDate      *string `json:"due_date"`
	AssignmentID *uint   `json:"assignment_id"`
}

// Apply merges everything except DueDate, which the handler parses
// before assigning.
func (r *UpdateSubtaskRequest) Apply(subtask *models.Subtask) {
	if r.Title != nil {
		subtask.Title = *r.Title
	}
	if r.Description != nil {
		subtask.Description = *r.Description
	}
	if r.AssignmentID != nil {
		subtask.AssignmentID = *r.AssignmentID
	}
}

type CreateSubmissionRequest struct {
	Description string `json:"description"`
	FilesLink   string `json:"files_link" validate:"omitempty,url"`
	SubtaskID   uint   `json:"subtask_id" validate:"required"`
	RevieweeID  uint   `json:"reviewee_id" validate:"required"`
}

type UpdateSubmissionRequest struct {
	Description *string `json:"description"`
	FilesLink   *string `json:"files_link" validate:"omitempty,url"`
	SubtaskID   *uint   `json:"subtask_id"`
	RevieweeID  *uint   `json:"reviewee_id"`
}

func (r *UpdateSubmissionRequest) Apply(submission *models.Submission) {
	if r.Description != nil {
		submission.Description = *r.Description
	}
	if r.FilesLink != nil {
		submission.FilesLink = *r.FilesLink
	}
	if r.SubtaskID != nil {
		submission.SubtaskID = *r.SubtaskID
	}
	if r.RevieweeID != nil {
		submission.RevieweeID = *r.RevieweeID
	}
}

type CreateReviewRequest struct {
	Content            string  `json:"content" validate:"required"`
	AdditionalComments *string `json:"additional_comments"`
	Status             string  `json:"status" validate:"required"`
	SubmissionID       uint    `json:"submission_id" validate:"required"`
	ReviewerID         uint    `json:"reviewer_id" validate:"required"`
}

type UpdateReviewRequest struct {
	Content            *string `json:"content"`
	AdditionalComments *string `json:"additional_comments"`
	Status             *string `json:"status"`
	SubmissionID       *uint   `json:"submission_id"`
	ReviewerID         *uint   `json:"reviewer_id"`
}

func (r *UpdateReviewRequest) Apply(review *models.Review) {
	if r.Content != nil {
		review.Content = *r.Content
	}
	if r.AdditionalComments != nil {
		review.AdditionalComments = r.AdditionalComments
	}
	if r.Status != nil {
		review.Status = *r.Status
	}
	if r.SubmissionID != nil {
		review.SubmissionID = *r.SubmissionID
	}
	if r.ReviewerID != nil {
		review.ReviewerID = *r.ReviewerID
	}
}

type CreateReviewCommentRequest struct {
	Comment     string `json:"comment" validate:"required"`
	ReviewID    uint   `json:"review_id" validate:"required"`
	CommenterID uint   `json:"commenter_id" validate:"required"`
}

type UpdateReviewCommentRequest struct {
	Comment     *string `json:"comment"`
	ReviewID    *uint   `json:"review_id"`
	CommenterID *uint   `json:"commenter_id"`
}

func (r *UpdateReviewCommentRequest) Apply(comment *models.ReviewComment) {
	if r.Comment != nil {
		comment.Comment = *r.Comment
	}
	if r.ReviewID != nil {
		comment.ReviewID = *r.ReviewID
	}
	if r.CommenterID != nil {
		comment.CommenterID = *r.CommenterID
	}
}

// Attachment creation arrives as multipart form data, so the parent
// ids are bound from form fields rather than JSON.
type UpdateAttachmentRequest struct {
	SubmissionID *uint `json:"submission_id"`
	ReviewID     *uint `json:"review_id"`
	SubtaskID    *uint `json:"subtask_id"`
}

func (r *UpdateAttachmentRequest) Apply(attachment *models.Attachment) {
	if r.SubmissionID != nil {
		attachment.SubmissionID = r.SubmissionID
	}
	if r.ReviewID != nil {
		attachment.ReviewID = r.ReviewID
	}
	if r.SubtaskID != nil {
		attachment.SubtaskID = r.SubtaskID
	}
}
