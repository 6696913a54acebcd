package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the API and resolves the per-route role table.
// The table is consulted by the role guard as a plain lookup; no route
// metadata is reflected on at request time.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	registry := controller.Registry
	registry.Require(string(router.POST), controller.Routes.Logout)
	registry.Require(string(router.GET), controller.Routes.Profile, AuthorityUser, AuthorityAdmin)
	registry.Require(string(router.GET), controller.Routes.Users, AuthorityAdmin)
	registry.Require(string(router.GET), controller.Routes.UserShow, AuthorityAdmin)
	registry.Require(string(router.PUT), controller.Routes.UserUpdate, AuthorityAdmin)
	registry.Require(string(router.DELETE), controller.Routes.UserDelete, AuthorityAdmin)

	authenticated := controller.Auther.Authenticated()
	roleGuard := func(method, path string) router.MiddlewareFunc {
		return RequireRoles(registry, method, path, controller.ErrorHandler)
	}

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("api.login")

	app.Post(controller.Routes.Register, controller.RegisterPost).
		SetName("api.register")

	app.Post(controller.Routes.Refresh, controller.RefreshPost).
		SetName("api.refresh")

	app.Post(controller.Routes.Logout, controller.LogoutPost,
		authenticated,
		roleGuard(string(router.POST), controller.Routes.Logout),
	).SetName("api.logout")

	app.Get(controller.Routes.Profile, controller.ProfileShow,
		authenticated,
		roleGuard(string(router.GET), controller.Routes.Profile),
	).SetName("api.profile")

	app.Get(controller.Routes.Users, controller.UserList,
		authenticated,
		roleGuard(string(router.GET), controller.Routes.Users),
	).SetName("api.users")

	app.Get(controller.Routes.UserShow, controller.UserShow,
		authenticated,
		roleGuard(string(router.GET), controller.Routes.UserShow),
	).SetName("api.user.show")

	app.Put(controller.Routes.UserUpdate, controller.UserUpdate,
		authenticated,
		roleGuard(string(router.PUT), controller.Routes.UserUpdate),
	).SetName("api.user.update")

	app.Delete(controller.Routes.UserDelete, controller.UserDelete,
		authenticated,
		roleGuard(string(router.DELETE), controller.Routes.UserDelete),
	).SetName("api.user.delete")
}

type AuthControllerRoutes struct {
	Login      string
	Logout     string
	Register   string
	Refresh    string
	Profile    string
	Users      string
	UserShow   string
	UserUpdate string
	UserDelete string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	Registry     *RoleRegistry
	Auther       HTTPAuthenticator
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: JSONError,
		Registry:     NewRoleRegistry(),
		Routes: &AuthControllerRoutes{
			Login:      "/api/login",
			Logout:     "/api/logout",
			Register:   "/api/register",
			Refresh:    "/api/refresh",
			Profile:    "/api/profile",
			Users:      "/api/users",
			UserShow:   "/api/user/:username",
			UserUpdate: "/api/user/update",
			UserDelete: "/api/user/delete/:username",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	return c
}

// WithRepositoryManager sets the repository aggregate.
func WithRepositoryManager(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

// WithHTTPAuthenticator sets the cookie transport authenticator.
func WithHTTPAuthenticator(auther HTTPAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithControllerLogger sets the controller logger.
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, ResultResponse{
			Result:  false,
			Message: "could not parse body",
			Error: &ErrorBody{
				Code:    "VALIDATION_ERROR",
				Details: err.Error(),
			},
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, ResultResponse{
			Result:  false,
			Message: "invalid login payload",
			Error: &ErrorBody{
				Code:    "VALIDATION_ERROR",
				Details: err.Error(),
			},
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if err := a.Auther.Login(ctx, payload.Username, payload.Password); err != nil {
		// Credential failures stay opaque; anything else (store outages,
		// signing failures) keeps its own category so the envelope answers
		// with a server error instead of blaming the credentials.
		if goerrors.Is(err, ErrInvalidCredentials) {
			return a.ErrorHandler(ctx, ErrInvalidCredentials)
		}
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "login successful", nil)
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Nickname string `form:"nickname" json:"nickname"`
	Email    string `form:"email" json:"email"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 60)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Nickname, validation.Required, validation.Length(1, 60)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, ResultResponse{
			Result:  false,
			Message: "could not parse body",
			Error:   &ErrorBody{Code: "VALIDATION_ERROR", Details: err.Error()},
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, ResultResponse{
			Result:  false,
			Message: "invalid registration payload",
			Error:   &ErrorBody{Code: "VALIDATION_ERROR", Details: err.Error()},
		})
	}

	registerUser := RegisterUserHandler{repo: a.Repo}
	if err := registerUser.Execute(ctx.Context(), RegisterUserMessage{
		Username: payload.Username,
		Password: payload.Password,
		Nickname: payload.Nickname,
		Email:    payload.Email,
	}); err != nil {
		a.Logger.Error("register user error", "error", err, "username", payload.Username)
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "registration complete", map[string]any{
		"username": payload.Username,
		"nickname": payload.Nickname,
	})
}

func (a *AuthController) LogoutPost(ctx router.Context) error {
	if err := a.Auther.Logout(ctx); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "logout complete", nil)
}

func (a *AuthController) RefreshPost(ctx router.Context) error {
	if err := a.Auther.Refresh(ctx); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "token refreshed", nil)
}

func (a *AuthController) ProfileShow(ctx router.Context) error {
	principal, ok := PrincipalFromRouterContext(ctx)
	if !ok {
		return a.ErrorHandler(ctx, ErrUnableToFindSession)
	}

	return JSONSuccess(ctx, "profile", map[string]any{
		"id":       principal.ID,
		"username": principal.Username,
		"nickname": principal.Nickname,
		"email":    principal.Email,
	})
}

func (a *AuthController) UserList(ctx router.Context) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	records, total, err := a.Repo.Users().List(ctx.Context(), page, limit)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "user list", map[string]any{
		"users": records,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (a *AuthController) UserShow(ctx router.Context) error {
	username := ctx.Param("username", "")

	user, err := a.Repo.Users().GetByUsername(ctx.Context(), username)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "user", map[string]any{"user": user})
}

// UpdateUserRequest updates authority and email by username
type UpdateUserRequest struct {
	Username  string `form:"username" json:"username"`
	Authority string `form:"authority" json:"authority"`
	Email     string `form:"email" json:"email"`
}

// Validate will validate the payload
func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Authority, validation.Required, validation.By(validAuthority)),
		validation.Field(&r.Email, is.Email),
	)
}

// validAuthority accepts any case or padding the role guard itself accepts
func validAuthority(value any) error {
	role, _ := value.(string)
	if !IsValidAuthority(role) {
		return fmt.Errorf("must be one of %s, %s", AuthorityAdmin, AuthorityUser)
	}
	return nil
}

func (a *AuthController) UserUpdate(ctx router.Context) error {
	payload := new(UpdateUserRequest)

	if err := ctx.Bind(payload); err != nil {
		return ctx.JSON(router.StatusBadRequest, ResultResponse{
			Result:  false,
			Message: "could not parse body",
			Error:   &ErrorBody{Code: "VALIDATION_ERROR", Details: err.Error()},
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, ResultResponse{
			Result:  false,
			Message: "invalid update payload",
			Error:   &ErrorBody{Code: "VALIDATION_ERROR", Details: err.Error()},
		})
	}

	user, err := a.Repo.Users().GetByUsername(ctx.Context(), payload.Username)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	user.Authority = normalizeRole(payload.Authority)
	if payload.Email != "" {
		user.Email = payload.Email
	}

	if _, err := a.Repo.Users().Update(ctx.Context(), user); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "user updated", nil)
}

func (a *AuthController) UserDelete(ctx router.Context) error {
	username := ctx.Param("username", "")

	user, err := a.Repo.Users().GetByUsername(ctx.Context(), username)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Repo.Users().Delete(ctx.Context(), user.ID); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return JSONSuccess(ctx, "user deleted", nil)
}
