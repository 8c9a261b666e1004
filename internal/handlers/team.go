package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type TeamHandler struct{}

func NewTeamHandler() *TeamHandler {
	return &TeamHandler{}
}

func (h *TeamHandler) List(c echo.Context) error {
	var teams []models.Team
	if err := database.DB.Find(&teams).Error; err != nil {
		return dbError(err, "team")
	}
	return c.JSON(http.StatusOK, teams)
}

func (h *TeamHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var team models.Team
	if err := database.DB.Preload("Members").First(&team, id).Error; err != nil {
		return dbError(err, "team")
	}
	return c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) Create(c echo.Context) error {
	var req dto.CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	team := models.Team{Name: req.Name}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		members, err := usersByIDs(tx, req.MemberIDs)
		if err != nil {
			return err
		}
		team.Members = members
		return tx.Create(&team).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "team")
	}

	return c.JSON(http.StatusCreated, team)
}

func (h *TeamHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var team models.Team
	if err := database.DB.Preload("Members").First(&team, id).Error; err != nil {
		return dbError(err, "team")
	}

	var req dto.UpdateTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	req.Apply(&team)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.MemberIDs != nil {
			members, err := usersByIDs(tx, req.MemberIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&team).Association("Members").Replace(members); err != nil {
				return err
			}
			team.Members = members
		}
		return tx.Save(&team).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "team")
	}

	return c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var team models.Team
	if err := database.DB.First(&team, id).Error; err != nil {
		return dbError(err, "team")
	}

	if err := database.DB.Delete(&team).Error; err != nil {
		return dbError(err, "team")
	}

	return c.NoContent(http.StatusNoContent)
}
