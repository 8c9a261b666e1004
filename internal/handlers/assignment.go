package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type AssignmentHandler struct{}

func NewAssignmentHandler() *AssignmentHandler {
	return &AssignmentHandler{}
}

func (h *AssignmentHandler) List(c echo.Context) error {
	var assignments []models.Assignment
	if err := database.DB.Preload("Subtasks").Find(&assignments).Error; err != nil {
		return dbError(err, "assignment")
	}
	return c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var assignment models.Assignment
	if err := database.DB.
		Preload("Subtasks").
		Preload("IndividualReviewees").
		Preload("TeamReviewees").
		First(&assignment, id).Error; err != nil {
		return dbError(err, "assignment")
	}
	return c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) Create(c echo.Context) error {
	var req dto.CreateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	assignment := models.Assignment{
		Title:       req.Title,
		Description: req.Description,
		CreatedByID: req.CreatedByID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := referencedID[models.User](tx, req.CreatedByID, "user"); err != nil {
			return err
		}
		reviewees, err := usersByIDs(tx, req.IndividualRevieweeIDs)
		if err != nil {
			return err
		}
		teams, err := teamsByIDs(tx, req.TeamRevieweeIDs)
		if err != nil {
			return err
		}
		assignment.IndividualReviewees = reviewees
		assignment.TeamReviewees = teams
		return tx.Create(&assignment).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "assignment")
	}

	return c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var assignment models.Assignment
	if err := database.DB.First(&assignment, id).Error; err != nil {
		return dbError(err, "assignment")
	}

	var req dto.UpdateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	req.Apply(&assignment)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.CreatedByID != nil {
			if err := referencedID[models.User](tx, *req.CreatedByID, "user"); err != nil {
				return err
			}
		}
		return tx.Save(&assignment).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "assignment")
	}

	return c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var assignment models.Assignment
	if err := database.DB.First(&assignment, id).Error; err != nil {
		return dbError(err, "assignment")
	}

	if err := database.DB.Delete(&assignment).Error; err != nil {
		return dbError(err, "assignment")
	}

	return c.NoContent(http.StatusNoContent)
}
