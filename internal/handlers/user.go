package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kmorozova/inventory-api/internal/logging"
	"github.com/kmorozova/inventory-api/internal/models"
)

// Admin-only account operations. Role gating happens in the middleware;
// these handlers assume an admin identity is already in the context.

func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	var users []models.User
	if err := h.DB.WithContext(ctx).Find(&users).Error; err != nil {
		logging.FromContext(ctx).Error("list_users_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "An error occurred. Please try again.",
		})
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_role")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid user id"})
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}

	if !models.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid role"})
	}

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		l.Error("update_role_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "An error occurred. Please try again.",
		})
	}

	user.Role = req.Role
	if err := h.DB.WithContext(ctx).Save(&user).Error; err != nil {
		l.Error("update_role_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "An error occurred. Please try again.",
		})
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_role_updated",
		"userID": user.ID,
		"role":   user.Role,
	})

	l.Info("update_role_success", "userID", user.ID, "role", user.Role)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User role updated to " + user.Role,
	})
}
