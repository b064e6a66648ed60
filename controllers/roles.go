package controllers

import (
	"net/http"

	"authcenter/auth"
	"authcenter/database"
	"authcenter/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// RoleController exposes role creation and lookup.
type RoleController struct {
	roleService services.RoleService
	authFilter  restful.FilterFunction
}

// NewRoleController creates a RoleController instance
func NewRoleController(roleService services.RoleService, authFilter restful.FilterFunction) *RoleController {
	return &RoleController{roleService: roleService, authFilter: authFilter}
}

// RegisterRoutes sets up the role routes for a go-restful WebService.
func (ctl *RoleController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/roles").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	adminOnly := auth.RequireRoles(database.AdminRoleValue)

	ws.Route(ws.POST("").Filter(ctl.authFilter).Filter(adminOnly).To(ctl.createRoleHandler).
		Doc("Create a new role").
		Metadata(restfulspec.KeyOpenAPITags, []string{"roles"}).
		Reads(services.CreateRoleInput{}).
		Writes(RoleResponse{}).
		Returns(http.StatusCreated, "Role created", RoleResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusConflict, "Role value already exists", nil))

	ws.Route(ws.GET("/{value}").Filter(ctl.authFilter).To(ctl.getRoleHandler).
		Doc("Get role by symbolic value").
		Param(ws.PathParameter("value", "Symbolic role value").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"roles"}).
		Writes(RoleResponse{}).
		Returns(http.StatusOK, "Role found", RoleResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusNotFound, "Role not found", nil))
}

// createRoleHandler (Handles POST /roles)
func (ctl *RoleController) createRoleHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CreateRoleInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}
	if input.Value == "" {
		writeBadRequest(response, "value is required")
		return
	}

	role, err := ctl.roleService.Create(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, mapRoleToResponse(role), restful.MIME_JSON)
}

// getRoleHandler (Handles GET /roles/{value})
func (ctl *RoleController) getRoleHandler(request *restful.Request, response *restful.Response) {
	role, err := ctl.roleService.GetByValue(request.PathParameter("value"))
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, mapRoleToResponse(role), restful.MIME_JSON)
}
