package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Role names
const (
	RoleReviewer = "reviewer"
	RoleReviewee = "reviewee"
	RoleAdmin    = "admin"
)

// Review statuses
const (
	ReviewStatusPassed           = "passed"
	ReviewStatusSuggestIteration = "suggest_iteration"
)

var ErrAttachmentNoParent = errors.New("attachment must reference at least one of submission, review, or subtask")

func ValidRoleName(name string) bool {
	switch name {
	case RoleReviewer, RoleReviewee, RoleAdmin:
		return true
	}
	return false
}

func ValidReviewStatus(status string) bool {
	return status == ReviewStatusPassed || status == ReviewStatusSuggestIteration
}

type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50" json:"name"`

	Users []User `gorm:"many2many:user_roles;" json:"-"`
}

type User struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Username   string    `gorm:"uniqueIndex;size:150" json:"username"`
	Email      string    `gorm:"uniqueIndex;size:254" json:"email"`
	FirstName  string    `gorm:"size:50" json:"first_name"`
	SecondName string    `gorm:"size:50" json:"second_name"`
	Password   string    `json:"-"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsStaff    bool      `gorm:"default:false" json:"is_staff"`
	DateJoined time.Time `gorm:"autoCreateTime" json:"date_joined"`

	Roles []Role `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
	Teams []Team `gorm:"many2many:team_members;constraint:OnDelete:CASCADE" json:"teams,omitempty"`

	CreatedAssignments []Assignment    `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	Submissions        []Submission    `gorm:"foreignKey:RevieweeID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews            []Review        `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewComments     []ReviewComment `gorm:"foreignKey:CommenterID;constraint:OnDelete:CASCADE" json:"-"`
}

type Team struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100" json:"name"`

	Members []User `gorm:"many2many:team_members;" json:"members,omitempty"`
}

type Assignment struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `json:"description"`
	AssignedDate time.Time `gorm:"autoCreateTime" json:"assigned_date"`

	CreatedByID uint  `json:"created_by_id"`
	CreatedBy   *User `json:"created_by,omitempty"`

	IndividualReviewees []User    `gorm:"many2many:assignment_individual_reviewees;constraint:OnDelete:CASCADE" json:"individual_reviewees,omitempty"`
	TeamReviewees       []Team    `gorm:"many2many:assignment_team_reviewees;constraint:OnDelete:CASCADE" json:"team_reviewees,omitempty"`
	Subtasks            []Subtask `gorm:"constraint:OnDelete:CASCADE" json:"subtasks,omitempty"`
}

type Subtask struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`

	AssignmentID uint        `json:"assignment_id"`
	Assignment   *Assignment `json:"assignment,omitempty"`

	Submissions []Submission `gorm:"constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

type Submission struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Description string    `json:"description"`
	FilesLink   string    `gorm:"size:500" json:"files_link"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`

	SubtaskID  uint     `json:"subtask_id"`
	Subtask    *Subtask `json:"subtask,omitempty"`
	RevieweeID uint     `json:"reviewee_id"`
	Reviewee   *User    `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`

	Reviews     []Review     `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

type Review struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Content            string    `json:"content"`
	AdditionalComments *string   `json:"additional_comments,omitempty"`
	ReviewedAt         time.Time `gorm:"autoCreateTime" json:"reviewed_at"`
	Status             string    `gorm:"size:20" json:"status"`

	SubmissionID uint        `json:"submission_id"`
	Submission   *Submission `json:"submission,omitempty"`
	ReviewerID   uint        `json:"reviewer_id"`
	Reviewer     *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`

	Comments    []ReviewComment `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Attachments []Attachment    `gorm:"constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

type ReviewComment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Comment     string    `json:"comment"`
	CommentedAt time.Time `gorm:"autoCreateTime" json:"commented_at"`

	ReviewID    uint    `json:"review_id"`
	Review      *Review `json:"review,omitempty"`
	CommenterID uint    `json:"commenter_id"`
	Commenter   *User   `gorm:"foreignKey:CommenterID" json:"commenter,omitempty"`
}

type Attachment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	FilePath   string    `gorm:"size:500" json:"file"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	SubmissionID *uint `json:"submission_id,omitempty"`
	ReviewID     *uint `json:"review_id,omitempty"`
	SubtaskID    *uint `json:"subtask_id,omitempty"`
}

// Validate enforces the attachment parent rule. It belongs to the
// entity, not the schema: an attachment with no parent is meaningless
// no matter which path tries to persist it.
func (a *Attachment) Validate() error {
	if a.SubmissionID == nil && a.ReviewID == nil && a.SubtaskID == nil {
		return ErrAttachmentNoParent
	}
	return nil
}

func (a *Attachment) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}
