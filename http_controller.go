package auth

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// LoginControllerRoutes are the mount points for the login endpoints.
type LoginControllerRoutes struct {
	Anonymous        string
	InternetIdentity string
	OAuth            string
}

// LoginController exposes the validator over HTTP as a JSON surface.
// Thin by design: every decision lives in LoginValidator.
type LoginController struct {
	Logger       Logger
	Validator    *LoginValidator
	Routes       *LoginControllerRoutes
	ErrorHandler router.ErrorHandler
}

type LoginControllerOption func(*LoginController) *LoginController

func NewLoginController(opts ...LoginControllerOption) *LoginController {
	c := &LoginController{
		Logger: defLogger{},
		Routes: &LoginControllerRoutes{
			Anonymous:        "/auth/anonymous",
			InternetIdentity: "/auth/internet-identity",
			OAuth:            "/auth/oauth",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Validator == nil {
		panic("Missing LoginValidator in login controller...")
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = c.handleError
	}

	return c
}

func WithControllerValidator(v *LoginValidator) LoginControllerOption {
	return func(c *LoginController) *LoginController {
		c.Validator = v
		return c
	}
}

func WithControllerLogger(logger Logger) LoginControllerOption {
	return func(c *LoginController) *LoginController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// RegisterLoginRoutes mounts the three login endpoints.
func RegisterLoginRoutes[T any](app router.Router[T], opts ...LoginControllerOption) {
	controller := NewLoginController(opts...)

	app.Post(controller.Routes.Anonymous, controller.AnonymousLogin).
		SetName("auth.anonymous.post")

	app.Post(controller.Routes.InternetIdentity, controller.InternetIdentityLogin).
		SetName("auth.internet-identity.post")

	app.Post(controller.Routes.OAuth, controller.OAuthLogin).
		SetName("auth.oauth.post")
}

// TokenResponse is the success payload for every login endpoint.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// ErrorResponse is the failure payload for every login endpoint.
type ErrorResponse struct {
	Error    string `json:"error"`
	TextCode string `json:"text_code,omitempty"`
}

// AnonymousLoginRequest payload
type AnonymousLoginRequest struct {
	AccessToken string `form:"access_token" json:"access_token"`
}

func (r AnonymousLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AccessToken, validation.Required),
	)
}

// InternetIdentityLoginRequest payload
type InternetIdentityLoginRequest struct {
	PrincipalID string `form:"principal_id" json:"principal_id"`
}

func (r InternetIdentityLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PrincipalID, validation.Required),
	)
}

// OAuthLoginRequest payload
type OAuthLoginRequest struct {
	Provider     string `form:"provider" json:"provider"`
	ThirdPartyID string `form:"third_party_id" json:"third_party_id"`
}

func (r OAuthLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Provider, validation.Required),
		validation.Field(&r.ThirdPartyID, validation.Required),
	)
}

func (a *LoginController) AnonymousLogin(ctx router.Context) error {
	payload := AnonymousLoginRequest{}
	if err := a.bind(ctx, &payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	token, err := a.Validator.ValidateAnonymousLogin(ctx.Context(), payload.AccessToken)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, TokenResponse{AuthToken: token})
}

func (a *LoginController) InternetIdentityLogin(ctx router.Context) error {
	payload := InternetIdentityLoginRequest{}
	if err := a.bind(ctx, &payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	token, err := a.Validator.ValidateInternetIdentityLogin(ctx.Context(), payload.PrincipalID)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, TokenResponse{AuthToken: token})
}

func (a *LoginController) OAuthLogin(ctx router.Context) error {
	payload := OAuthLoginRequest{}
	if err := a.bind(ctx, &payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	token, err := a.Validator.ValidateOAuthLogin(ctx.Context(), IdentityCredential{
		Provider:     Provider(payload.Provider),
		ThirdPartyID: payload.ThirdPartyID,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, TokenResponse{AuthToken: token})
}

type validatable interface {
	Validate() error
}

func (a *LoginController) bind(ctx router.Context, payload validatable) error {
	if err := ctx.Bind(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unable to parse login payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid login payload").
			WithCode(errors.CodeBadRequest)
	}

	return nil
}

func (a *LoginController) handleError(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Login request failed",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	status := richErr.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return c.JSON(status, ErrorResponse{
		Error:    richErr.Message,
		TextCode: richErr.TextCode,
	})
}
