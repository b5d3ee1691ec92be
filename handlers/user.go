package handlers

import (
	"errors"
	"net/http"

	"fleetrent/services/user"
	"fleetrent/utils"

	"github.com/gin-gonic/gin"
)

var userService user.UserService

// SetUserService injects the user service used by the package-level handlers.
func SetUserService(svc user.UserService) {
	userService = svc
}

// RegisterUserHandler handles POST /api/users/register.
func RegisterUserHandler(c *gin.Context) {
	var input user.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	u, err := userService.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrAlreadyRegistered) {
			utils.JSONError(c, http.StatusConflict, "Registration failed", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed", "Please try again later.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// AuthenticateUserHandler handles POST /api/users/login.
func AuthenticateUserHandler(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := userService.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication failed", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Authentication failed", "Please try again later.")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserByIDHandler handles GET /api/users/id/:id.
func GetUserByIDHandler(c *gin.Context) {
	u, err := userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// DeleteUserHandler handles DELETE /api/users/:id. Users may remove only their
// own account; administrators may remove any.
func DeleteUserHandler(c *gin.Context) {
	targetID := c.Param("id")
	if c.GetString("userID") != targetID && !c.GetBool("isAdmin") {
		utils.JSONError(c, http.StatusForbidden, "Not authorized", "you may only delete your own account")
		return
	}

	if err := userService.Delete(c.Request.Context(), targetID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
