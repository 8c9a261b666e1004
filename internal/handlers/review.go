package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type ReviewHandler struct{}

func NewReviewHandler() *ReviewHandler {
	return &ReviewHandler{}
}

func (h *ReviewHandler) List(c echo.Context) error {
	var reviews []models.Review
	if err := database.DB.Find(&reviews).Error; err != nil {
		return dbError(err, "review")
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var review models.Review
	if err := database.DB.
		Preload("Comments").
		Preload("Attachments").
		Preload("Reviewer").
		First(&review, id).Error; err != nil {
		return dbError(err, "review")
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.ValidReviewStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown review status: "+req.Status)
	}

	review := models.Review{
		Content:            req.Content,
		AdditionalComments: req.AdditionalComments,
		Status:             req.Status,
		SubmissionID:       req.SubmissionID,
		ReviewerID:         req.ReviewerID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := referencedID[models.Submission](tx, req.SubmissionID, "submission"); err != nil {
			return err
		}
		if err := referencedID[models.User](tx, req.ReviewerID, "user"); err != nil {
			return err
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "review")
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var review models.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		return dbError(err, "review")
	}

	var req dto.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Status != nil && !models.ValidReviewStatus(*req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown review status: "+*req.Status)
	}

	req.Apply(&review)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.SubmissionID != nil {
			if err := referencedID[models.Submission](tx, *req.SubmissionID, "submission"); err != nil {
				return err
			}
		}
		if req.ReviewerID != nil {
			if err := referencedID[models.User](tx, *req.ReviewerID, "user"); err != nil {
				return err
			}
		}
		return tx.Save(&review).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "review")
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var review models.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		return dbError(err, "review")
	}

	if err := database.DB.Delete(&review).Error; err != nil {
		return dbError(err, "review")
	}

	return c.NoContent(http.StatusNoContent)
}
