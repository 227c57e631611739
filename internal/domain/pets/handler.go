package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/ports/blobstore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
	})
}

// petResponse representa una mascota devuelta por la API.
type petResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls"`
	IsAdopted   bool      `json:"is_adopted"`
	IsAddPost   bool      `json:"is_add_post"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Alta de mascota con imágenes (multipart). Campos: name, breed, age, description, files "images".
// @Tags pets
// @Accept mpfd
// @Produce json
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid multipart / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
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

		age := 0
		if v := strings.TrimSpace(r.FormValue("age")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "age must be a number", http.StatusBadRequest)
				return
			}
			age = n
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
			Name:        r.FormValue("name"),
			Breed:       r.FormValue("breed"),
			Age:         age,
			Description: r.FormValue("description"),
			Images:      images,
		})
		if err != nil {
			if errors.Is(err, blobstore.ErrUpload) {
				http.Error(w, "error uploading image", http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		ImageURLs:   p.ImageURLs,
		IsAdopted:   p.IsAdopted,
		IsAddPost:   p.IsAddPost,
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
