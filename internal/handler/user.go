package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"
)

type UserHandler struct {
	userService service.UserService
	authCfg     config.Auth
}

func NewUserHandler(userService service.UserService, authCfg config.Auth) *UserHandler {
	return &UserHandler{
		userService: userService,
		authCfg:     authCfg,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.userService.Register(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}

	h.setAuthCookie(c, token)
	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.userService.Login(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}

	h.setAuthCookie(c, token)
	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) Logout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.authCfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

func (h *UserHandler) Profile(c echo.Context) error {
	user := middleware.CurrentUser(c)

	profile, err := h.userService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.NewUserResponse(profile))
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) setAuthCookie(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.authCfg.TokenTTL),
		HttpOnly: true,
		Secure:   h.authCfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
	c.SetCookie(cookie)
}
