package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Preload("Roles").Order("first_name, second_name").Find(&users).Error; err != nil {
		return dbError(err, "user")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Preload("Roles").Preload("Teams").First(&user, id).Error; err != nil {
		return dbError(err, "user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hash),
		FirstName:  req.FirstName,
		SecondName: req.SecondName,
		IsActive:   true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		roles, err := resolveRoles(tx, req.Roles)
		if err != nil {
			return err
		}
		user.Roles = roles
		return tx.Create(&user).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "user")
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Preload("Roles").First(&user, id).Error; err != nil {
		return dbError(err, "user")
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	req.Apply(&user)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// A supplied role list replaces the current set, resolving
		// each name with get-or-create.
		if len(req.Roles) > 0 {
			roles, err := resolveRoles(tx, req.Roles)
			if err != nil {
				return err
			}
			if err := tx.Model(&user).Association("Roles").Replace(roles); err != nil {
				return err
			}
			user.Roles = roles
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return dbError(err, "user")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return dbError(err, "user")
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		return dbError(err, "user")
	}

	return c.NoContent(http.StatusNoContent)
}
