package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userPayload(user *models.User) gin.H {
	return gin.H{"userId": user.ID, "username": user.Username, "email": user.Email}
}

func (s *Server) register(c *gin.Context) {

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		// The historical contract answers registration conflicts with 200
		// and a warning payload instead of a 409.
		switch {
		case errors.Is(err, common.ErrorUsernameTaken):
			c.JSON(http.StatusOK, gin.H{"warningMessage": "User with this username already exists"})
		case errors.Is(err, common.ErrorEmailTaken):
			c.JSON(http.StatusOK, gin.H{"warningMessage": "User with this email already exists"})
		default:
			s.logger.Error(c.Request.Context(), err.Error())
			writeError(c, err)
		}
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.Username)
	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetCookie(common.SessionCookieName, token, int(s.sessionValidity.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

func (s *Server) loginCheck(c *gin.Context) {
	user := c.MustGet(ctxUserKey).(*models.User)
	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

func (s *Server) logout(c *gin.Context) {

	sessionID := c.MustGet(ctxSessionKey).(string)
	if err := s.users.Logout(c.Request.Context(), sessionID); err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}

	c.SetCookie(common.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
