package controllers

import (
	"net/http"

	"authcenter/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// AuthController exposes registration and login. Both routes are public.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates an AuthController instance
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// TokenResponse is the body of a successful registration or login.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterRoutes sets up the auth routes for a go-restful WebService.
func (ctl *AuthController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/auth").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.POST("/registration").To(ctl.registrationHandler).
		Doc("Register a new user and issue a token").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(services.CredentialsInput{}).
		Returns(http.StatusCreated, "User registered", TokenResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusConflict, "Email already exists", nil))

	ws.Route(ws.POST("/login").To(ctl.loginHandler).
		Doc("Authenticate and issue a token").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(services.CredentialsInput{}).
		Returns(http.StatusOK, "Login successful", TokenResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusUnauthorized, "Invalid credentials", nil))
}

// registrationHandler (Handles POST /auth/registration)
func (ctl *AuthController) registrationHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CredentialsInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}
	if input.Email == "" || input.Password == "" {
		writeBadRequest(response, "Email and password are required")
		return
	}

	token, err := ctl.authService.Register(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, TokenResponse{Token: token}, restful.MIME_JSON)
}

// loginHandler (Handles POST /auth/login)
func (ctl *AuthController) loginHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CredentialsInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}
	if input.Email == "" || input.Password == "" {
		writeBadRequest(response, "Email and password are required")
		return
	}

	token, err := ctl.authService.Login(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, TokenResponse{Token: token}, restful.MIME_JSON)
}
