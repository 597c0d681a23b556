// Package models содержит доменные структуры PureScan:
// пользователя с тарифным планом, запись истории сканирований,
// результат анализа состава, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Plan обозначает тарифный план пользователя.
type Plan string

const (
	// PlanFree — бесплатный тариф с квотой сканирований.
	PlanFree Plan = "FREE"
	// PlanPro — платный тариф без квоты.
	PlanPro Plan = "PRO"
	// PlanUltra — расширенный платный тариф без квоты.
	PlanUltra Plan = "ULTRA"
)

// Valid сообщает, относится ли значение к одному из трёх определённых тарифов.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro || p == PlanUltra
}

// Metered сообщает, расходует ли тариф квоту сканирований.
func (p Plan) Metered() bool {
	return p == PlanFree
}

// DefaultFreeScans — стартовая квота сканирований на бесплатном тарифе.
const DefaultFreeScans = 3

// Settings хранит пользовательские настройки уведомлений и отображения.
type Settings struct {
	Notifications bool `json:"notifications"`
	DarkMode      bool `json:"dark_mode"`
}

// User представляет профиль пользователя.
// Идентичность приходит из внешнего виджета авторизации или ручной формы,
// поэтому все поля идентичности, кроме имени, опциональны.
type User struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name"`
	Username   string    `json:"username,omitempty"`
	TelegramID string    `json:"telegram_id,omitempty"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	Plan       Plan      `json:"plan"`
	ScansLeft  int       `json:"scans_left"`
	Allergies  []string  `json:"allergies"`
	Settings   Settings  `json:"settings"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginProfile используется для приёма частичного профиля из JSON-запроса
// при входе. Любая предоставленная идентичность принимается как есть,
// недостающие поля заполняются значениями по умолчанию.
type LoginProfile struct {
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	Username   string `json:"username,omitempty"`
	TelegramID string `json:"telegram_id,omitempty"`
	PhotoURL   string `json:"photo_url,omitempty"`
}
