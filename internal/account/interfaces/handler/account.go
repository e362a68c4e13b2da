package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"DiceWars/internal/account/app"
	"DiceWars/internal/account/dto"
	"DiceWars/internal/shared/transport/http/middleware"
	"DiceWars/modules/kit/logx"
	"DiceWars/modules/kit/tracex"
)

type Account struct {
	userService *app.UserService
	log         logx.Logger
}

func NewAccount(userService *app.UserService, log logx.Logger) *Account {
	return &Account{
		userService: userService,
		log:         log,
	}
}

func (a *Account) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	users := api.Group("/users")
	users.POST("", a.register)
	users.POST("/login", a.login)
	users.GET("/me", auth, a.me)
}

func (a *Account) register(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "参数有误"})
		return
	}

	resp, err := a.userService.Register(ctx, req)
	if err != nil {
		a.error(c, "account register", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a *Account) login(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "参数有误"})
		return
	}

	resp, err := a.userService.Login(ctx, req)
	if err != nil {
		a.error(c, "account login", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a *Account) me(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	uid, ok := middleware.UID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "缺少有效身份"})
		return
	}

	resp, err := a.userService.Profile(ctx, uid)
	if err != nil {
		a.error(c, "account profile", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a *Account) error(c *gin.Context, op string, err error) {
	status, body := toHTTPError(err)
	if status >= http.StatusInternalServerError {
		a.log.WithContext(c.Request.Context()).Error(op+" tech error", zap.Error(err))
	}
	c.JSON(status, body)
}
