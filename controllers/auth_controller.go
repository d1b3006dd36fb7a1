package controllers

import (
	"context"
	"errors"
	"net/http"

	"TaskMinderGo/config"
	"TaskMinderGo/models"
	"TaskMinderGo/services"
	"TaskMinderGo/utils"

	"github.com/gin-gonic/gin"
)

// AuthController 认证控制器
type AuthController struct {
	accounts services.AccountService
}

func NewAuthController(accounts services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// CreateAnonymousAccount 创建匿名账户
// 无需邮箱密码即可开始使用，后续可通过绑定升级为正式账户
func (ac *AuthController) CreateAnonymousAccount(c *gin.Context) {
	if err := ac.accounts.CreateAnonymousAccount(c.Request.Context()); err != nil {
		config.Logger.Errorw("匿名账户创建失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "匿名账户创建失败"})
		return
	}

	ac.respondWithToken(c)
}

// Login 邮箱密码登录
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.accounts.Authenticate(c.Request.Context(), req.Email, req.Password); err != nil {
		var authErr *utils.AuthenticationError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
			return
		}
		config.Logger.Errorw("登录失败", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	ac.respondWithToken(c)
}

// LinkAccount 将邮箱密码绑定到当前匿名账户
func (ac *AuthController) LinkAccount(c *gin.Context) {
	var req models.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.accounts.LinkAccount(c.Request.Context(), req.Email, req.Password); err != nil {
		var linkErr *utils.LinkAccountError
		if errors.As(err, &linkErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": linkErr.Message})
			return
		}
		config.Logger.Errorw("账户绑定失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "账户绑定失败"})
		return
	}

	ac.respondWithToken(c)
}

// DeleteAccount 删除当前账户
func (ac *AuthController) DeleteAccount(c *gin.Context) {
	if err := ac.accounts.DeleteAccount(c.Request.Context()); err != nil {
		config.Logger.Errorw("账户删除失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "账户删除失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "账户已删除"})
}

// SignOut 退出登录
// 匿名身份会被删除并自动重建一个新的匿名账户
func (ac *AuthController) SignOut(c *gin.Context) {
	if err := ac.accounts.SignOut(c.Request.Context()); err != nil {
		config.Logger.Errorw("退出登录失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "退出登录失败"})
		return
	}

	ac.respondWithToken(c)
}

// CurrentUser 获取当前用户身份
func (ac *AuthController) CurrentUser(c *gin.Context) {
	uid := ac.accounts.CurrentUserID()
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "当前没有已登录的账户"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":   uid,
		"signedIn": ac.accounts.IsUserSignedIn(),
	})
}

// respondWithToken 为当前身份签发JWT并返回
func (ac *AuthController) respondWithToken(c *gin.Context) {
	uid := ac.accounts.CurrentUserID()
	token, err := utils.GenerateToken(uid)
	if err != nil {
		config.Logger.Errorw("令牌生成失败", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token: token,
		User:  models.Identity{UserID: uid, IsAnonymous: ac.isAnonymous()},
	})
}

func (ac *AuthController) isAnonymous() bool {
	// 身份流在订阅时立即发出当前值，借此读取匿名标记
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	identity := <-ac.accounts.CurrentUser(ctx)
	return identity.IsAnonymous
}
