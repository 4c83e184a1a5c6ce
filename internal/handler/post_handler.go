package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jsonblog/internal/repository"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type PostRequest struct {
	Title   string `json:"title" validate:"required"`
	Summary string `json:"summary"`
	Content string `json:"content" validate:"required"`
}

// GetPosts returns posts in insertion order. page and limit are optional; without
// them the whole collection is returned. X-Total-Count always carries the full size.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	total := len(posts)
	query := r.URL.Query()

	if query.Has("page") || query.Has("limit") {
		page, _ := strconv.Atoi(query.Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(query.Get("limit"))
		if limit < 1 || limit > maxLimit {
			limit = defaultLimit
		}

		// compare pages before multiplying so a huge page cannot overflow
		start := total
		if page-1 < (total+limit-1)/limit {
			start = (page - 1) * limit
		}
		end := min(start+limit, total)
		posts = posts[start:end]
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, "Access denied", http.StatusForbidden)
		return
	}

	req, ok := h.decodePostRequest(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), repository.CreatePostRequest{
		Author:  claims.Username,
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

// UpdatePost lets any authenticated user edit any post; authorship is not checked.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	req, ok := h.decodePostRequest(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), repository.UpdatePostRequest{
		PostID:  postID,
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Post deleted"}, http.StatusOK)
}

func (h *Handlers) decodePostRequest(w http.ResponseWriter, r *http.Request) (PostRequest, bool) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return PostRequest{}, false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Title and content are required", http.StatusBadRequest)
		return PostRequest{}, false
	}

	return req, true
}

func postIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Invalid post id", http.StatusBadRequest)
		return 0, false
	}
	return postID, true
}
