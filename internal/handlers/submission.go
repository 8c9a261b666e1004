package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type SubmissionHandler struct{}

func NewSubmissionHandler() *SubmissionHandler {
	return &SubmissionHandler{}
}

func (h *SubmissionHandler) List(c echo.Context) error {
	var submissions []models.Submission
	if err := database.DB.Find(&submissions).Error; err != nil {
		return dbError(err, "submission")
	}
	return c.JSON(http.StatusOK, submissions)
}

func (h *SubmissionHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var submission models.Submission
	if err := database.DB.
		Preload("Reviews").
		Preload("Attachments").
		Preload("Reviewee").
		First(&submission, id).Error; err != nil {
		return dbError(err, "submission")
	}
	return c.JSON(http.StatusOK, submission)
}

func (h *SubmissionHandler) Create(c echo.Context) error {
	var req dto.CreateSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	submission := models.Submission{
		Description: req.Description,
		FilesLink:   req.FilesLink,
		SubtaskID:   req.SubtaskID,
		RevieweeID:  req.RevieweeID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := referencedID[models.Subtask](tx, req.SubtaskID, "subtask"); err != nil {
			return err
		}
		if err := referencedID[models.User](tx, req.RevieweeID, "user"); err != nil {
			return err
		}
		return tx.Create(&submission).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "submission")
	}

	return c.JSON(http.StatusCreated, submission)
}

func (h *SubmissionHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var submission models.Submission
	if err := database.DB.First(&submission, id).Error; err != nil {
		return dbError(err, "submission")
	}

	var req dto.UpdateSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	req.Apply(&submission)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.SubtaskID != nil {
			if err := referencedID[models.Subtask](tx, *req.SubtaskID, "subtask"); err != nil {
				return err
			}
		}
		if req.RevieweeID != nil {
			if err := referencedID[models.User](tx, *req.RevieweeID, "user"); err != nil {
				return err
			}
		}
		return tx.Save(&submission).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "submission")
	}

	return c.JSON(http.StatusOK, submission)
}

func (h *SubmissionHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var submission models.Submission
	if err := database.DB.First(&submission, id).Error; err != nil {
		return dbError(err, "submission")
	}

	if err := database.DB.Delete(&submission).Error; err != nil {
		return dbError(err, "submission")
	}

	return c.NoContent(http.StatusNoContent)
}
