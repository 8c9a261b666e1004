package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type SubtaskHandler struct{}

func NewSubtaskHandler() *SubtaskHandler {
	return &SubtaskHandler{}
}

func (h *SubtaskHandler) List(c echo.Context) error {
	var subtasks []models.Subtask
	if err := database.DB.Find(&subtasks).Error; err != nil {
		return dbError(err, "subtask")
	}
	return c.JSON(http.StatusOK, subtasks)
}

func (h *SubtaskHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var subtask models.Subtask
	if err := database.DB.Preload("Submissions").Preload("Attachments").First(&subtask, id).Error; err != nil {
		return dbError(err, "subtask")
	}
	return c.JSON(http.StatusOK, subtask)
}

func (h *SubtaskHandler) Create(c echo.Context) error {
	var req dto.CreateSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	dueDate, err := parseDateTime(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid due_date format")
	}

	subtask := models.Subtask{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      dueDate,
		AssignmentID: req.AssignmentID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := referencedID[models.Assignment](tx, req.AssignmentID, "assignment"); err != nil {
			return err
		}
		return tx.Create(&subtask).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "subtask")
	}

	return c.JSON(http.StatusCreated, subtask)
}

func (h *SubtaskHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var subtask models.Subtask
	if err := database.DB.First(&subtask, id).Error; err != nil {
		return dbError(err, "subtask")
	}

	var req dto.UpdateSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	req.Apply(&subtask)

	if req.DueDate != nil {
		dueDate, err := parseDateTime(*req.DueDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid due_date format")
		}
		subtask.DueDate = dueDate
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.AssignmentID != nil {
			if err := referencedID[models.Assignment](tx, *req.AssignmentID, "assignment"); err != nil {
				return err
			}
		}
		return tx.Save(&subtask).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "subtask")
	}

	return c.JSON(http.StatusOK, subtask)
}

func (h *SubtaskHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var subtask models.Subtask
	if err := database.DB.First(&subtask, id).Error; err != nil {
		return dbError(err, "subtask")
	}

	if err := database.DB.Delete(&subtask).Error; err != nil {
		return dbError(err, "subtask")
	}

	return c.NoContent(http.StatusNoContent)
}
