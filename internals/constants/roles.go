package constants

// Roles de usuario. Los alumnos participan anónimos (solo código de sesión),
// por eso no tienen rol persistido.
const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Planes de suscripción
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)
