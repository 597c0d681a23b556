package models

import "time"

// Статусы безопасности продукта, выводимые из числовой оценки.
const (
	StatusSafe    = "safe"
	StatusWarning = "warning"
	StatusDanger  = "danger"
)

// Статусы отдельных ингредиентов.
const (
	IngredientSafe    = "safe"
	IngredientNeutral = "neutral"
	IngredientRisk    = "risk"
	IngredientDanger  = "danger"
)

// Уровни риска добавок.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Nutrient описывает одну строку пищевой ценности
// с качественной оценкой и процентом для визуализации.
type Nutrient struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Status     string `json:"status"` // good | bad | neutral
	Percentage int    `json:"percentage,omitempty"`
}

// IngredientItem описывает один ингредиент состава.
type IngredientItem struct {
	Name          string `json:"name"`
	CanonicalName string `json:"canonical_name"`
	Status        string `json:"status"`
	Function      string `json:"function"`
	Description   string `json:"description,omitempty"`
}

// Additive описывает одну пищевую добавку (Е-код или название).
type Additive struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	RiskLevel   string `json:"risk_level"`
	Description string `json:"description"`
}

// ScanResult — разобранный результат одного анализа состава.
// Создаётся один раз на сканирование и после этого не изменяется.
type ScanResult struct {
	ID          string           `json:"id"`
	Fingerprint string           `json:"fingerprint,omitempty"`
	ProductName string           `json:"product_name,omitempty"`
	Status      string           `json:"status"`
	Score       string           `json:"score"`
	Verdict     string           `json:"verdict"`
	Details     string           `json:"details"`
	Nutrients   []Nutrient       `json:"nutrients"`
	Ingredients []IngredientItem `json:"ingredients"`
	Additives   []Additive       `json:"additives"`
	Pros        []string         `json:"pros"`
	Cons        []string         `json:"cons"`
	ImageData   string           `json:"image_data,omitempty"`
}

// HistoryItem — запись об одном прошедшем сканировании.
// Оценка и статус дублируются из вложенного результата при добавлении:
// список истории отдаётся без разбора полного результата, а единственная
// точка записи гарантирует, что значения не разойдутся.
type HistoryItem struct {
	ID          string     `json:"id"`
	UserUID     string     `json:"-"`
	Date        string     `json:"date"`
	ProductName string     `json:"product_name"`
	Score       string     `json:"score"`
	Status      string     `json:"status"`
	RawResult   ScanResult `json:"raw_result"`
	CreatedAt   time.Time  `json:"-"`
}

// ScanInput — входные данные сканирования: изображение этикетки в base64
// или текст состава. При наличии обоих приоритет у изображения.
type ScanInput struct {
	ImageBase64 string `json:"image_base64,omitempty"`
	Ingredients string `json:"ingredients,omitempty"`
}

// Empty сообщает, что не передано ни изображение, ни текст.
func (in ScanInput) Empty() bool {
	return in.ImageBase64 == "" && in.Ingredients == ""
}

// ScanEvent публикуется в очередь после успешного сканирования
// и потребляется сервисом уведомлений.
type ScanEvent struct {
	UserUID     string    `json:"user_uid"`
	ResultID    string    `json:"result_id"`
	ProductName string    `json:"product_name"`
	Score       string    `json:"score"`
	Status      string    `json:"status"`
	Verdict     string    `json:"verdict"`
	OccurredAt  time.Time `json:"occurred_at"`
}
