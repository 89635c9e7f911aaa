// Package dto содержит объекты передачи данных для Gateway.
package dto

// Роли пользователей, известные фронтенду.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserProfile содержит данные профиля пользователя.
// Авторитетная копия живет в Booking API; здесь только кэш сессии.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar,omitempty"`
	Role      string `json:"role"`
}

// AuthPayload - полезная нагрузка ответа Booking API на login/register/refresh.
type AuthPayload struct {
	User         *UserProfile `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// AuthResponse - ответ Gateway браузеру после успешной аутентификации.
// Токены остаются на стороне Gateway и наружу не отдаются.
type AuthResponse struct {
	User *UserProfile `json:"user"`
}

// UpdateProfileRequest содержит редактируемые пользователем поля профиля.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}
