package handlers

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/user-management/api/http/presenter"
	"github.com/artem13815/user-management/pkg/security/jwt"
	"github.com/artem13815/user-management/pkg/user"
)

type UserHandler struct {
	useCase  user.UserUseCase
	validate *validator.Validate
}

func NewUserHandler(useCase user.UserUseCase) *UserHandler {
	return &UserHandler{useCase: useCase, validate: newValidator()}
}

// newValidator reports fields by their json names so validation messages
// match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type phoneRequest struct {
	Number      *int64 `json:"number" validate:"required"`
	CityCode    *int   `json:"citycode" validate:"required"`
	CountryCode string `json:"countrycode" validate:"required"`
}

type signUpRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8,max=12"`
	Phones   []phoneRequest `json:"phones" validate:"omitempty,dive"`
}

type loginRequest struct {
	Token string `json:"token" validate:"required"`
}

// SignUp registers a new user and issues its first token.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body signUpRequest true "sign-up payload"
// @Success 201 {object} presenter.SignUpResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /sign-up [post]
func (h *UserHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	phones := make([]user.Phone, 0, len(req.Phones))
	for _, p := range req.Phones {
		phones = append(phones, user.Phone{
			Number:      *p.Number,
			CityCode:    *p.CityCode,
			CountryCode: p.CountryCode,
		})
	}

	created, err := h.useCase.SignUp(c.Context(), user.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   phones,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(presenter.NewSignUpResponse(created))
}

// Login rotates a previously issued token and returns the profile.
// The lastLogin field reports the login *before* this call.
// @Summary Login with bearer token
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} presenter.LoginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	logged, err := h.useCase.LoginWithToken(c.Context(), req.Token)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(presenter.NewLoginResponse(logged))
}

// Profile returns the profile of the authenticated user.
// @Summary Current user profile
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.LoginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	subject, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(subject)
	if err != nil {
		return jwt.ErrTokenInvalid
	}

	u, err := h.useCase.Profile(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(presenter.NewLoginResponse(u))
}

// validationError joins field failures the way the API reports them:
// "Validation Error(s): field: message; field: message".
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return presenter.ValidationError(err.Error())
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+fieldMessage(fe))
	}
	return presenter.ValidationError(strings.Join(parts, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		if fe.Tag() == "email" {
			return "Invalid email format"
		}
		return "Email is required"
	case "password":
		if fe.Tag() == "required" {
			return "Password is required"
		}
		return "Password must have: Exactly one uppercase, two numbers, some lowercase letters, max length 12 and min 8."
	case "token":
		return "Token is required for login"
	case "number":
		return "Phone number is required"
	case "citycode":
		return "City code is required"
	case "countrycode":
		return "Country code is required"
	default:
		return "invalid value"
	}
}
