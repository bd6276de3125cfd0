package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zingamazing/zing-orders/internal/admin"
)

func adminLoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin_login.html", gin.H{})
	}
}

func adminLoginHandler(creds *admin.Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		password := c.PostForm("password")
		if creds.Check(email, password) {
			c.Redirect(http.StatusSeeOther, "/admin/dashboard")
			return
		}
		c.HTML(http.StatusOK, "admin_login.html", gin.H{"error": "Invalid credentials"})
	}
}

func adminLogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/login")
	}
}

func forgotPasswordPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "forgot_password.html", gin.H{})
	}
}

func forgotPasswordHandler(creds *admin.Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		newPassword := c.PostForm("new_password")
		if newPassword == "" || !creds.Reset(email, newPassword) {
			c.HTML(http.StatusOK, "forgot_password.html", gin.H{"error": "Invalid email. Access denied."})
			return
		}
		c.HTML(http.StatusOK, "forgot_password.html", gin.H{"success": "Password updated successfully!"})
	}
}

// pageHandler serves one of the static storefront pages.
func pageHandler(template string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, template, gin.H{})
	}
}
