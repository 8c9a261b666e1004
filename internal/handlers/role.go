package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"review-system-api/internal/database"
	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

func (h *RoleHandler) List(c echo.Context) error {
	var roles []models.Role
	if err := database.DB.Find(&roles).Error; err != nil {
		return dbError(err, "role")
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		return dbError(err, "role")
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) Create(c echo.Context) error {
	var req dto.CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.ValidRoleName(req.Name) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role: "+req.Name)
	}

	role := models.Role{Name: req.Name}
	if err := database.DB.Create(&role).Error; err != nil {
		return dbError(err, "role")
	}

	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		return dbError(err, "role")
	}

	var req dto.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Name != nil && !models.ValidRoleName(*req.Name) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role: "+*req.Name)
	}

	req.Apply(&role)
	if err := database.DB.Save(&role).Error; err != nil {
		return dbError(err, "role")
	}

	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		return dbError(err, "role")
	}

	if err := database.DB.Delete(&role).Error; err != nil {
		return dbError(err, "role")
	}

	return c.NoContent(http.StatusNoContent)
}
