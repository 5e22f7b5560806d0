package main

import (
	"net/http"

	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/gin-gonic/gin"
)

func registerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		user, err := models.RegisterUser(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "authHandlers.go", "registerHandler", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
	}
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		user, token, err := models.LoginUser(c.Request.Context(), &input)
		if err != nil {
			// invalid credentials stays a 401, never a 500
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := models.GetSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}
