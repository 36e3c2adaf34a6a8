package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nearby/internal/models/request_models"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Login godoc
// @Summary Log in
// @Description Exchange e-mail and password for a 60 minute access token
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Credentials"
// @Success 200 {object} response_models.LoginResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := a.accountService.Login(req, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// SignUp godoc
// @Summary Create an account
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/auth/signup [post]
func (a *AccountController) SignUp(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := a.accountService.CreateAccount(req, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, nil, "Account created successfully")
}
