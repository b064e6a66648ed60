package controllers

import (
	"net/http"
	"strconv"
	"time"

	"authcenter/auth"
	"authcenter/database"
	"authcenter/models"
	"authcenter/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// UserController exposes the user directory: listing, lookup, role
// assignment and ban management. All routes require authentication; the
// administrative ones additionally require the ADMIN role.
type UserController struct {
	userService services.UserService
	authFilter  restful.FilterFunction
}

// NewUserController creates a UserController instance
func NewUserController(userService services.UserService, authFilter restful.FilterFunction) *UserController {
	return &UserController{userService: userService, authFilter: authFilter}
}

// RoleResponse defines the response structure of a role
type RoleResponse struct {
	ID          uint   `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// UserResponse defines the response structure of user information
type UserResponse struct {
	ID        uint           `json:"id"`
	Email     string         `json:"email"`
	Banned    bool           `json:"banned"`
	BanReason string         `json:"banReason,omitempty"`
	Roles     []RoleResponse `json:"roles"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type PaginatedUsersResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// --- Helpers to map models to responses ---

func mapRoleToResponse(role *models.Role) RoleResponse {
	return RoleResponse{ID: role.ID, Value: role.Value, Description: role.Description}
}

func mapUserToResponse(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	roles := make([]RoleResponse, len(user.Roles))
	for i := range user.Roles {
		roles[i] = mapRoleToResponse(&user.Roles[i])
	}
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Banned:    user.Banned,
		BanReason: user.BanReason,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// RegisterRoutes sets up the user-related routes for a go-restful WebService.
func (ctl *UserController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/users").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	adminOnly := auth.RequireRoles(database.AdminRoleValue)

	ws.Route(ws.GET("").Filter(ctl.authFilter).Filter(adminOnly).To(ctl.listUsersHandler).
		Doc("List users with pagination").
		Param(ws.QueryParameter("page", "Page number (default 1)").DataType("integer").DefaultValue("1")).
		Param(ws.QueryParameter("page_size", "Users per page (default 10)").DataType("integer").DefaultValue("10")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes(PaginatedUsersResponse{}).
		Returns(http.StatusOK, "Users listed successfully", PaginatedUsersResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusForbidden, "Forbidden", nil))

	ws.Route(ws.GET("/{user-id}").Filter(ctl.authFilter).To(ctl.getUserByIDHandler).
		Doc("Get user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes(UserResponse{}).
		Returns(http.StatusOK, "User found", UserResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.POST("/role").Filter(ctl.authFilter).Filter(adminOnly).To(ctl.assignRoleHandler).
		Doc("Assign a role to a user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.AssignRoleInput{}).
		Writes(UserResponse{}).
		Returns(http.StatusOK, "Role assigned", UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "User or role not found", nil))

	ws.Route(ws.POST("/ban").Filter(ctl.authFilter).Filter(adminOnly).To(ctl.banHandler).
		Doc("Ban a user and record the reason").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.BanInput{}).
		Writes(UserResponse{}).
		Returns(http.StatusOK, "User banned", UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.POST("/unban/{user-id}").Filter(ctl.authFilter).Filter(adminOnly).To(ctl.unbanHandler).
		Doc("Lift a user's ban").
		Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes(UserResponse{}).
		Returns(http.StatusOK, "User unbanned", UserResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "User not found", nil))
}

// listUsersHandler (Handles GET /users)
func (ctl *UserController) listUsersHandler(request *restful.Request, response *restful.Response) {
	page, err := strconv.Atoi(request.QueryParameter("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(request.QueryParameter("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	users, total, err := ctl.userService.List(page, pageSize)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = mapUserToResponse(&users[i])
	}

	respData := PaginatedUsersResponse{
		Users:    userResponses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, respData, restful.MIME_JSON)
}

// getUserByIDHandler (Handles GET /users/{user-id})
func (ctl *UserController) getUserByIDHandler(request *restful.Request, response *restful.Response) {
	userID, err := strconv.ParseUint(request.PathParameter("user-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid user ID format")
		return
	}

	user, err := ctl.userService.GetByID(uint(userID))
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapUserToResponse(user), restful.MIME_JSON)
}

// assignRoleHandler (Handles POST /users/role)
func (ctl *UserController) assignRoleHandler(request *restful.Request, response *restful.Response) {
	input := new(services.AssignRoleInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}
	if input.UserID == 0 || input.Value == "" {
		writeBadRequest(response, "userId and value are required")
		return
	}

	user, err := ctl.userService.AssignRole(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapUserToResponse(user), restful.MIME_JSON)
}

// banHandler (Handles POST /users/ban)
func (ctl *UserController) banHandler(request *restful.Request, response *restful.Response) {
	input := new(services.BanInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}
	if input.UserID == 0 {
		writeBadRequest(response, "userId is required")
		return
	}

	user, err := ctl.userService.Ban(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapUserToResponse(user), restful.MIME_JSON)
}

// unbanHandler (Handles POST /users/unban/{user-id})
func (ctl *UserController) unbanHandler(request *restful.Request, response *restful.Response) {
	userID, err := strconv.ParseUint(request.PathParameter("user-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid user ID format")
		return
	}

	user, err := ctl.userService.Unban(uint(userID))
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapUserToResponse(user), restful.MIME_JSON)
}
