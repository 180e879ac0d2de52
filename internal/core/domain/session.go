package domain

// Роли, с которыми работает фронтенд.
const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// IsKnownRole проверяет роль, запрошенную формой входа.
func IsKnownRole(role string) bool {
	switch role {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// AuthSession - текущая сессия пользователя.
type AuthSession struct {
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// Credentials - данные формы входа.
type Credentials struct {
	Role     string
	Email    string
	Password string
}

// LoginResult - ответ бэкенда на попытку входа.
type LoginResult struct {
	BackendStatus
	Role   string
	Email  string
	Name   string
	UserID string
}

// Registration - данные формы регистрации.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// RegistrationResult - ответ бэкенда на регистрацию.
type RegistrationResult struct {
	BackendStatus
	Email       string
	RequiresOTP bool
}

// RegistrationDetails - данные, которые бэкенд может запросить после подтверждения кода.
type RegistrationDetails struct {
	Name      string
	Phone     string
	BirthDate string
	Country   string
}

// Profile - профиль авторизованного пользователя.
type Profile struct {
	UserID    string
	Name      string
	Email     string
	Phone     string
	AvatarURL string
	Bio       string
	Role      string
}

// ProfileUpdate - изменяемые поля профиля; nil означает "не менять".
type ProfileUpdate struct {
	Name      *string
	Phone     *string
	AvatarURL *string
	Bio       *string
}

// IsEmpty - в обновлении нет ни одного поля.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.AvatarURL == nil && u.Bio == nil
}
