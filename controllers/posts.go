package controllers

import (
	"net/http"
	"path/filepath"
	"time"

	"authcenter/auth"
	"authcenter/models"
	"authcenter/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// maxUploadBytes bounds how much of a multipart body is held in memory.
const maxUploadBytes = 10 << 20

// PostController exposes post creation with an optional image upload.
type PostController struct {
	postService services.PostService
	authFilter  restful.FilterFunction
}

// NewPostController creates a PostController instance
func NewPostController(postService services.PostService, authFilter restful.FilterFunction) *PostController {
	return &PostController{postService: postService, authFilter: authFilter}
}

// PostResponse defines the response structure of a post
type PostResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	UserID    uint      `json:"userId"`
	CreatedAt time.Time `json:"created_at"`
}

func mapPostToResponse(post *models.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Image:     post.Image,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
	}
}

// RegisterRoutes sets up the post routes for a go-restful WebService.
func (ctl *PostController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/posts").Produces(restful.MIME_JSON)

	ws.Route(ws.POST("").Filter(ctl.authFilter).To(ctl.createPostHandler).
		Doc("Create a post with an optional image (multipart form: title, content, image)").
		Consumes("multipart/form-data").
		Metadata(restfulspec.KeyOpenAPITags, []string{"posts"}).
		Writes(PostResponse{}).
		Returns(http.StatusCreated, "Post created", PostResponse{}).
		Returns(http.StatusBadRequest, "Invalid form data", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil))

	ws.Route(ws.GET("").Filter(ctl.authFilter).To(ctl.listOwnPostsHandler).
		Doc("List the authenticated user's posts").
		Metadata(restfulspec.KeyOpenAPITags, []string{"posts"}).
		Writes([]PostResponse{}).
		Returns(http.StatusOK, "Posts listed", []PostResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil))
}

// createPostHandler (Handles POST /posts)
func (ctl *PostController) createPostHandler(request *restful.Request, response *restful.Response) {
	claims, ok := auth.ClaimsFromRequest(request)
	if !ok {
		_ = response.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"message": "not authenticated"}, restful.MIME_JSON)
		return
	}

	if err := request.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		writeBadRequest(response, "Invalid multipart form: "+err.Error())
		return
	}

	input := &services.CreatePostInput{
		UserID:  claims.UserID,
		Title:   request.Request.FormValue("title"),
		Content: request.Request.FormValue("content"),
	}
	if input.Title == "" {
		writeBadRequest(response, "title is required")
		return
	}

	file, header, err := request.Request.FormFile("image")
	if err == nil {
		defer file.Close()
		input.Image = file
		input.ImageExt = filepath.Ext(header.Filename)
	} else if err != http.ErrMissingFile {
		writeBadRequest(response, "Invalid image upload: "+err.Error())
		return
	}

	post, err := ctl.postService.Create(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, mapPostToResponse(post), restful.MIME_JSON)
}

// listOwnPostsHandler (Handles GET /posts)
func (ctl *PostController) listOwnPostsHandler(request *restful.Request, response *restful.Response) {
	claims, ok := auth.ClaimsFromRequest(request)
	if !ok {
		_ = response.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"message": "not authenticated"}, restful.MIME_JSON)
		return
	}

	posts, err := ctl.postService.ListByUser(claims.UserID)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	postResponses := make([]PostResponse, len(posts))
	for i := range posts {
		postResponses[i] = mapPostToResponse(&posts[i])
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, postResponses, restful.MIME_JSON)
}
