package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
	"review-system-api/internal/storage"
)

type AttachmentHandler struct {
	store *storage.FileStore
}

func NewAttachmentHandler(store *storage.FileStore) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

func (h *AttachmentHandler) List(c echo.Context) error {
	var attachments []models.Attachment
	if err := database.DB.Find(&attachments).Error; err != nil {
		return dbError(err, "attachment")
	}
	return c.JSON(http.StatusOK, attachments)
}

func (h *AttachmentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var attachment models.Attachment
	if err := database.DB.First(&attachment, id).Error; err != nil {
		return dbError(err, "attachment")
	}
	return c.JSON(http.StatusOK, attachment)
}

// Create accepts multipart form data: a required "file" part plus
// optional submission_id, review_id, and subtask_id fields.
func (h *AttachmentHandler) Create(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	attachment := models.Attachment{}
	if attachment.SubmissionID, err = formID(c, "submission_id"); err != nil {
		return err
	}
	if attachment.ReviewID, err = formID(c, "review_id"); err != nil {
		return err
	}
	if attachment.SubtaskID, err = formID(c, "subtask_id"); err != nil {
		return err
	}

	// Reject orphans before touching the disk.
	if err := attachment.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read uploaded file")
	}
	defer src.Close()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.checkParents(tx, attachment.SubmissionID, attachment.ReviewID, attachment.SubtaskID); err != nil {
			return err
		}
		path, err := h.store.Save(fileHeader.Filename, src)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to store file")
		}
		attachment.FilePath = path
		if err := tx.Create(&attachment).Error; err != nil {
			h.store.Remove(path)
			return err
		}
		return nil
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "attachment")
	}

	return c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var attachment models.Attachment
	if err := database.DB.First(&attachment, id).Error; err != nil {
		return dbError(err, "attachment")
	}

	var req dto.UpdateAttachmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	req.Apply(&attachment)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.checkParents(tx, req.SubmissionID, req.ReviewID, req.SubtaskID); err != nil {
			return err
		}
		return tx.Save(&attachment).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "attachment")
	}

	return c.JSON(http.StatusOK, attachment)
}

func (h *AttachmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var attachment models.Attachment
	if err := database.DB.First(&attachment, id).Error; err != nil {
		return dbError(err, "attachment")
	}

	if err := database.DB.Delete(&attachment).Error; err != nil {
		return dbError(err, "attachment")
	}

	h.store.Remove(attachment.FilePath)

	return c.NoContent(http.StatusNoContent)
}

// Download streams the stored file back to the client.
func (h *AttachmentHandler) Download(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var attachment models.Attachment
	if err := database.DB.First(&attachment, id).Error; err != nil {
		return dbError(err, "attachment")
	}

	f, err := h.store.Open(attachment.FilePath)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "attachment file missing")
	}
	defer f.Close()

	return c.Stream(http.StatusOK, "application/octet-stream", f)
}

func (h *AttachmentHandler) checkParents(tx *gorm.DB, submissionID, reviewID, subtaskID *uint) error {
	if submissionID != nil {
		if err := referencedID[models.Submission](tx, *submissionID, "submission"); err != nil {
			return err
		}
	}
	if reviewID != nil {
		if err := referencedID[models.Review](tx, *reviewID, "review"); err != nil {
			return err
		}
	}
	if subtaskID != nil {
		if err := referencedID[models.Subtask](tx, *subtaskID, "subtask"); err != nil {
			return err
		}
	}
	return nil
}

func formID(c echo.Context, field string) (*uint, error) {
	value := c.FormValue(field)
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+field)
	}
	uid := uint(id)
	return &uid, nil
}
