package adoptionposts

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/ports/blobstore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/adoption-posts", func(ar chi.Router) {
		ar.Post("/", createPostHandler(svc))
		ar.Get("/", listPostsHandler(svc))
		ar.Get("/{postID}", getPostHandler(svc))
	})
}

// postResponse representa un post de adopción devuelto por la API.
type postResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createPostHandler godoc
// @Summary Publicar post de adopción
// @Description Crea un post (multipart: pet_id, title, description, files "images"). El contenido pasa por moderación; si es dañino, 400.
// @Tags adoption-posts
// @Accept mpfd
// @Produce json
// @Success 201 {object} postResponse
// @Failure 400 {string} string "invalid input / content rejected / error uploading image"
// @Failure 401 {string} string "unauthorized"
// @Router /adoption-posts [post]
func createPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		var images [][]byte
		if r.MultipartForm != nil {
			for _, fh := range r.MultipartForm.File["images"] {
				f, err := fh.Open()
				if err != nil {
					http.Error(w, "invalid image file", http.StatusBadRequest)
					return
				}
				b, err := io.ReadAll(f)
				_ = f.Close()
				if err != nil {
					http.Error(w, "invalid image file", http.StatusBadRequest)
					return
				}
				images = append(images, b)
			}
		}

		p, err := svc.Create(r.Context(), CreateInput{
			PetID:       r.FormValue("pet_id"),
			AuthorID:    claims.UserID,
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Images:      images,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrContentRejected):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, blobstore.ErrUpload):
				http.Error(w, "error uploading image", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidPet), errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPostResponse(p))
	}
}

// getPostHandler godoc
// @Summary Ver post de adopción
// @Tags adoption-posts
// @Produce json
// @Param postID path string true "ID del post"
// @Success 200 {object} postResponse
// @Failure 404 {string} string "adoption post not found"
// @Router /adoption-posts/{postID} [get]
func getPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")
		p, err := svc.GetByID(r.Context(), postID)
		if err != nil {
			http.Error(w, "adoption post not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPostResponse(p))
	}
}

// listPostsHandler godoc
// @Summary Listar posts de adopción
// @Tags adoption-posts
// @Produce json
// @Success 200 {array} postResponse
// @Failure 500 {string} string "internal error"
// @Router /adoption-posts [get]
func listPostsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]postResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPostResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toPostResponse(p AdoptionPost) postResponse {
	return postResponse{
		ID:          p.ID,
		PetID:       p.PetID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Description: p.Description,
		ImageURLs:   p.ImageURLs,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
