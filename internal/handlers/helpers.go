package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"review-system-api/internal/dto"
	"review-system-api/internal/models"
)

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime: %q", s)
}

// dbError translates storage failures into the HTTP taxonomy: lookup
// misses are 404, unique violations 409, everything else 500.
func dbError(err error, entity string) *echo.HTTPError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, entity+" not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return echo.NewHTTPError(http.StatusConflict, entity+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return echo.NewHTTPError(http.StatusBadRequest, entity+" references a missing row")
	case errors.Is(err, models.ErrAttachmentNoParent):
		return echo.NewHTTPError(http.StatusBadRequest, models.ErrAttachmentNoParent.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to persist "+entity)
}

// referencedID checks that a row the payload points at exists; a miss
// is a client error on the payload, not a 404 on the route.
func referencedID[T any](tx *gorm.DB, id uint, entity string) error {
	var row T
	if err := tx.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("referenced %s %d not found", entity, id))
		}
		return dbError(err, entity)
	}
	return nil
}

// resolveRoles maps role payloads to Role rows, creating any that do
// not exist yet. Role names outside the known set are rejected.
func resolveRoles(tx *gorm.DB, payloads []dto.RolePayload) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(payloads))
	for _, p := range payloads {
		if !models.ValidRoleName(p.Name) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unknown role: "+p.Name)
		}
		var role models.Role
		if err := tx.Where(models.Role{Name: p.Name}).FirstOrCreate(&role).Error; err != nil {
			return nil, dbError(err, "role")
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// usersByIDs loads the given users, failing if any id is unknown.
func usersByIDs(tx *gorm.DB, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := tx.Find(&users, ids).Error; err != nil {
		return nil, dbError(err, "user")
	}
	if len(users) != len(ids) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "one or more referenced users not found")
	}
	return users, nil
}

func teamsByIDs(tx *gorm.DB, ids []uint) ([]models.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var teams []models.Team
	if err := tx.Find(&teams, ids).Error; err != nil {
		return nil, dbError(err, "team")
	}
	if len(teams) != len(ids) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "one or more referenced teams not found")
	}
	return teams, nil
}
