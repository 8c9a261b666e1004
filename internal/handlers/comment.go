package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type ReviewCommentHandler struct{}

func NewReviewCommentHandler() *ReviewCommentHandler {
	return &ReviewCommentHandler{}
}

func (h *ReviewCommentHandler) List(c echo.Context) error {
	var comments []models.ReviewComment
	if err := database.DB.Find(&comments).Error; err != nil {
		return dbError(err, "comment")
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *ReviewCommentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var comment models.ReviewComment
	if err := database.DB.Preload("Commenter").First(&comment, id).Error; err != nil {
		return dbError(err, "comment")
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *ReviewCommentHandler) Create(c echo.Context) error {
	var req dto.CreateReviewCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := models.ReviewComment{
		Comment:     req.Comment,
		ReviewID:    req.ReviewID,
		CommenterID: req.CommenterID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := referencedID[models.Review](tx, req.ReviewID, "review"); err != nil {
			return err
		}
		if err := referencedID[models.User](tx, req.CommenterID, "user"); err != nil {
			return err
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "comment")
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *ReviewCommentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var comment models.ReviewComment
	if err := database.DB.First(&comment, id).Error; err != nil {
		return dbError(err, "comment")
	}

	var req dto.UpdateReviewCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	req.Apply(&comment)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.ReviewID != nil {
			if err := referencedID[models.Review](tx, *req.ReviewID, "review"); err != nil {
				return err
			}
		}
		if req.CommenterID != nil {
			if err := referencedID[models.User](tx, *req.CommenterID, "user"); err != nil {
				return err
			}
		}
		return tx.Save(&comment).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "comment")
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *ReviewCommentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var comment models.ReviewComment
	if err := database.DB.First(&comment, id).Error; err != nil {
		return dbError(err, "comment")
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		return dbError(err, "comment")
	}

	return c.NoContent(http.StatusNoContent)
}
