package adoptionforms

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/blobstore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/adoption-forms", func(fr chi.Router) {
		fr.Post("/", createFormHandler(svc))
		fr.Get("/", listFormsHandler(svc, log))
		fr.Get("/sender/{senderID}", listFormsBySenderHandler(svc, log))
		fr.Patch("/{formID}/status", updateStatusHandler(svc))
		fr.Post("/{formID}/checks", submitCheckHandler(svc))
	})
}

type addressRequest struct {
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Detail   string `json:"detail"`
}

type adopterRequest struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address addressRequest `json:"address"`
}

// createFormRequest es el cuerpo para enviar una solicitud de adopción.
type createFormRequest struct {
	AdoptionPostID string         `json:"adoption_post_id"`
	PetID          string         `json:"pet_id"`
	Adopter        adopterRequest `json:"adopter"`
	Reason         string         `json:"reason"`
}

type formResponse struct {
	ID               string         `json:"id"`
	AdoptionPostID   string         `json:"adoption_post_id"`
	PetID            string         `json:"pet_id"`
	SenderID         string         `json:"sender_id"`
	Adopter          adopterRequest `json:"adopter"`
	Reason           string         `json:"reason"`
	Status           Status         `json:"status"`
	ApprovedDate     *time.Time     `json:"approved_date"`
	NextCheckDate    *time.Time     `json:"next_check_date"`
	PeriodicCheckIDs []string       `json:"periodic_check_ids"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type staffRefResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type checkResponse struct {
	ID        string            `json:"id"`
	FormID    string            `json:"form_id"`
	CheckDate time.Time         `json:"check_date"`
	Status    CheckHealth       `json:"status"`
	Notes     string            `json:"notes"`
	CheckedBy *staffRefResponse `json:"checked_by"`
	ImageURL  string            `json:"image_url"`
	CreatedAt time.Time         `json:"created_at"`
}

type populatedFormResponse struct {
	formResponse
	Post   any             `json:"adoption_post"`
	Pet    any             `json:"pet"`
	Sender *senderResponse `json:"sender"`
	Checks []checkResponse `json:"periodic_checks"`
}

type senderResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type pageResponse struct {
	Results      []populatedFormResponse `json:"results"`
	Page         int                     `json:"page"`
	Limit        int                     `json:"limit"`
	TotalPages   int                     `json:"totalPages"`
	TotalResults int                     `json:"totalResults"`
}

// createFormHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Crea un formulario Pending. Valida que usuario, mascota y post existan antes de escribir.
// @Tags adoption-forms
// @Accept json
// @Produce json
// @Param payload body createFormRequest true "Datos de la solicitud"
// @Success 201 {object} formResponse
// @Failure 400 {string} string "invalid json / invalid user|pet|post id"
// @Failure 401 {string} string "unauthorized"
// @Router /adoption-forms [post]
func createFormHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createFormRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		f, err := svc.Create(r.Context(), CreateInput{
			AdoptionPostID: req.AdoptionPostID,
			PetID:          req.PetID,
			SenderID:       claims.UserID,
			Adopter: Adopter{
				Name:  req.Adopter.Name,
				Email: req.Adopter.Email,
				Phone: req.Adopter.Phone,
				Address: Address{
					Province: req.Adopter.Address.Province,
					District: req.Adopter.Address.District,
					Ward:     req.Adopter.Address.Ward,
					Detail:   req.Adopter.Address.Detail,
				},
			},
			Reason: req.Reason,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidUser), errors.Is(err, ErrInvalidPet), errors.Is(err, ErrInvalidPost):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toFormResponse(f))
	}
}

type updateStatusRequest struct {
	Status Status `json:"status" enums:"Pending,Approved,Rejected"`
}

// updateStatusHandler godoc
// @Summary Actualizar estado de una solicitud
// @Description Rejected libera la mascota (isAdopted=false, isAddPost=false); Approved marca isAdopted=true. El estado se valida antes de cualquier mutación.
// @Tags adoption-forms
// @Accept json
// @Produce json
// @Param formID path string true "ID del formulario"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} populatedFormResponse
// @Failure 400 {string} string "Invalid status value"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "Adoption form not found"
// @Router /adoption-forms/{formID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		pf, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "formID"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidStatus):
				http.Error(w, "Invalid status value", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "Adoption form not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPopulatedFormResponse(pf))
	}
}

// submitCheckHandler godoc
// @Summary Registrar chequeo periódico
// @Description Registra un chequeo de bienestar (multipart: check_date RFC3339 opcional, status, notes, file "image" opcional; o JSON sin foto). La agenda del próximo chequeo se recalcula según la cantidad de chequeos previos.
// @Tags adoption-forms
// @Accept mpfd
// @Produce json
// @Param formID path string true "ID del formulario"
// @Success 200 {object} checkResponse
// @Failure 400 {string} string "invalid check status / Error uploading image"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "Adoption form not found"
// @Router /adoption-forms/{formID}/checks [post]
func submitCheckHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in := SubmitCheckInput{
			FormID:      chi.URLParam(r, "formID"),
			CheckedByID: claims.UserID,
		}

		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/") {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				http.Error(w, "invalid multipart form", http.StatusBadRequest)
				return
			}
			in.Health = CheckHealth(r.FormValue("status"))
			in.Notes = r.FormValue("notes")
			if v := strings.TrimSpace(r.FormValue("check_date")); v != "" {
				t, err := time.Parse(time.RFC3339, v)
				if err != nil {
					http.Error(w, "check_date must be RFC3339", http.StatusBadRequest)
					return
				}
				in.CheckDate = t
			}
			if f, _, err := r.FormFile("image"); err == nil {
				b, err := io.ReadAll(f)
				_ = f.Close()
				if err != nil {
					http.Error(w, "invalid image file", http.StatusBadRequest)
					return
				}
				in.Image = b
			}
		} else {
			var req struct {
				CheckDate string      `json:"check_date"`
				Status    CheckHealth `json:"status"`
				Notes     string      `json:"notes"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			in.Health = req.Status
			in.Notes = req.Notes
			if strings.TrimSpace(req.CheckDate) != "" {
				t, err := time.Parse(time.RFC3339, req.CheckDate)
				if err != nil {
					http.Error(w, "check_date must be RFC3339", http.StatusBadRequest)
					return
				}
				in.CheckDate = t
			}
		}

		pc, err := svc.SubmitCheck(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "Adoption form not found", http.StatusNotFound)
			case errors.Is(err, blobstore.ErrUpload):
				http.Error(w, "Error uploading image", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidHealth), errors.Is(err, ErrInvalidUser):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		// El original responde OK (200), no Created, para los chequeos.
		writeJSON(w, http.StatusOK, toCheckResponse(pc))
	}
}

// listFormsHandler godoc
// @Summary Listar solicitudes de adopción
// @Description Lista paginada y populada. Filtros: status, pet_id, post_id, sender_id, q (busca en reason y nombre/email del adoptante). Orden default: createdAt descendente.
// @Tags adoption-forms
// @Produce json
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 5)"
// @Param sortBy query string false "Campo de orden: createdAt | updatedAt"
// @Param status query string false "Pending | Approved | Rejected"
// @Param q query string false "Búsqueda libre"
// @Success 200 {object} pageResponse
// @Failure 500 {string} string "internal error"
// @Router /adoption-forms [get]
func listFormsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, page := parseListQuery(r)

		out, err := svc.List(r.Context(), filter, page)
		if err != nil {
			// El detalle se loguea, nunca se expone en el body.
			log.Error("list adoption forms failed", map[string]any{"err": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPageResponse(out))
	}
}

// listFormsBySenderHandler godoc
// @Summary Listar solicitudes de un remitente
// @Tags adoption-forms
// @Produce json
// @Param senderID path string true "ID del usuario remitente"
// @Success 200 {object} pageResponse
// @Failure 500 {string} string "internal error"
// @Router /adoption-forms/sender/{senderID} [get]
func listFormsBySenderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, page := parseListQuery(r)

		out, err := svc.ListBySender(r.Context(), chi.URLParam(r, "senderID"), filter, page)
		if err != nil {
			log.Error("list adoption forms by sender failed", map[string]any{"err": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPageResponse(out))
	}
}

func parseListQuery(r *http.Request) (ListFilter, PageRequest) {
	q := r.URL.Query()

	filter := ListFilter{
		SenderID: strings.TrimSpace(q.Get("sender_id")),
		PetID:    strings.TrimSpace(q.Get("pet_id")),
		PostID:   strings.TrimSpace(q.Get("post_id")),
		Status:   Status(strings.TrimSpace(q.Get("status"))),
		Query:    strings.TrimSpace(q.Get("q")),
	}

	page := PageRequest{SortBy: strings.TrimSpace(q.Get("sortBy"))}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Limit = n
		}
	}

	return filter, page
}

func toFormResponse(f AdoptionForm) formResponse {
	return formResponse{
		ID:             f.ID,
		AdoptionPostID: f.AdoptionPostID,
		PetID:          f.PetID,
		SenderID:       f.SenderID,
		Adopter: adopterRequest{
			Name:  f.Adopter.Name,
			Email: f.Adopter.Email,
			Phone: f.Adopter.Phone,
			Address: addressRequest{
				Province: f.Adopter.Address.Province,
				District: f.Adopter.Address.District,
				Ward:     f.Adopter.Address.Ward,
				Detail:   f.Adopter.Address.Detail,
			},
		},
		Reason:           f.Reason,
		Status:           f.Status,
		ApprovedDate:     f.ApprovedDate,
		NextCheckDate:    f.NextCheckDate,
		PeriodicCheckIDs: f.PeriodicCheckIDs,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

func toCheckResponse(pc PopulatedCheck) checkResponse {
	out := checkResponse{
		ID:        pc.Check.ID,
		FormID:    pc.Check.FormID,
		CheckDate: pc.Check.CheckDate,
		Status:    pc.Check.Health,
		Notes:     pc.Check.Notes,
		ImageURL:  pc.Check.ImageURL,
		CreatedAt: pc.Check.CreatedAt,
	}
	if pc.CheckedBy != nil {
		out.CheckedBy = &staffRefResponse{
			ID:       pc.CheckedBy.ID,
			Username: pc.CheckedBy.Username,
			Email:    pc.CheckedBy.Email,
		}
	}
	return out
}

func toPopulatedFormResponse(pf PopulatedForm) populatedFormResponse {
	out := populatedFormResponse{
		formResponse: toFormResponse(pf.Form),
		Checks:       make([]checkResponse, 0, len(pf.Checks)),
	}
	if pf.Post != nil {
		out.Post = pf.Post
	}
	if pf.Pet != nil {
		out.Pet = pf.Pet
	}
	if pf.Sender != nil {
		out.Sender = &senderResponse{
			ID:       pf.Sender.ID,
			Username: pf.Sender.Username,
			Email:    pf.Sender.Email,
		}
	}
	for _, c := range pf.Checks {
		out.Checks = append(out.Checks, toCheckResponse(c))
	}
	return out
}

func toPageResponse(p PopulatedPage) pageResponse {
	out := pageResponse{
		Results:      make([]populatedFormResponse, 0, len(p.Results)),
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
	for _, f := range p.Results {
		out.Results = append(out.Results, toPopulatedFormResponse(f))
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
