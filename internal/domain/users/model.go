package users

import "time"

// Role define los roles soportados.
type Role string

const (
	RoleUser         Role = "user"
	RoleAdmin        Role = "admin"
	RoleServiceStaff Role = "services_staff"
	RoleForumStaff   Role = "forum_staff"
)

// User es el perfil mínimo que necesita el workflow de adopción:
// validación de referencias y population del staff que hizo un chequeo.
// Registro/login viven en otro servicio.
type User struct {
	ID       string
	Username string
	Email    string
	Role     Role

	CreatedAt time.Time
}
