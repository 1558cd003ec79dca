package dto

// ---------------- Requests ----------------

// TelegramLoginRequest несет сырую строку initData из Telegram Mini App.
// Подпись проверяется на сервере, до создания сессии.
type TelegramLoginRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

// ---------------- Responses ----------------

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
