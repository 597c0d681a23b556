package scan

import (
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/purescan-ai/purescan-backend/internal/genai"
	"github.com/purescan-ai/purescan-backend/internal/models"
)

// Пороговые значения оценки: граница 8.0 относится к safe, 5.0 — к warning.
const (
	safeThreshold    = 8.0
	warningThreshold = 5.0
)

// bucketStatus выводит категорию безопасности из числовой оценки.
func bucketStatus(score float64) string {
	switch {
	case score >= safeThreshold:
		return models.StatusSafe
	case score >= warningThreshold:
		return models.StatusWarning
	default:
		return models.StatusDanger
	}
}

// mapAudit переводит сырой ответ модели в доменный результат,
// добивая отсутствующие поля значениями по умолчанию.
func mapAudit(raw *genai.RawAudit, input models.ScanInput) *models.ScanResult {
	productName := raw.Product.Name
	if productName == "" {
		productName = "Продукт"
	}

	result := &models.ScanResult{
		ID:          uuid.NewString(),
		Fingerprint: raw.FingerprintMaterial,
		ProductName: productName,
		Score:       formatScore(raw.Analysis.Score),
		Status:      bucketStatus(raw.Analysis.Score),
		Verdict:     raw.Analysis.Verdict,
		Details:     raw.Analysis.Recommendation,
		Nutrients: []models.Nutrient{
			{
				Label:      "Ккал",
				Value:      formatScore(raw.Nutrition.Kcal),
				Status:     "neutral",
				Percentage: clampPercent(raw.Nutrition.Kcal / 10),
			},
			{
				Label:      "Сахар",
				Value:      formatScore(raw.Nutrition.Sugar) + "г",
				Status:     sugarStatus(raw.Nutrition.Sugar),
				Percentage: clampPercent(raw.Nutrition.Sugar * 2),
			},
		},
		Ingredients: mapIngredients(raw.Ingredients.Items),
		Additives:   mapAdditives(raw.Additives),
		Pros:        orEmpty(raw.Analysis.Pros),
		Cons:        orEmpty(raw.Analysis.Cons),
		ImageData:   input.ImageBase64,
	}
	return result
}

func mapIngredients(items []genai.RawIngredient) []models.IngredientItem {
	result := make([]models.IngredientItem, 0, len(items))
	for _, i := range items {
		status := i.Status
		if status == "" {
			status = models.IngredientNeutral
		}
		result = append(result, models.IngredientItem{
			Name:          i.Name,
			CanonicalName: i.CanonicalName,
			Status:        status,
			Function:      i.Function,
			Description:   i.Description,
		})
	}
	return result
}

func mapAdditives(additives []genai.RawAdditive) []models.Additive {
	result := make([]models.Additive, 0, len(additives))
	for _, a := range additives {
		risk := a.Risk
		if risk == "" {
			risk = models.RiskMedium
		}
		result = append(result, models.Additive{
			Code:        a.Code,
			Name:        a.Name,
			RiskLevel:   risk,
			Description: a.Description,
		})
	}
	return result
}

// formatScore печатает число без хвостовых нулей: 6.2 → "6.2", 10 → "10".
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sugarStatus(sugar float64) string {
	if sugar > 10 {
		return "bad"
	}
	return "good"
}

func clampPercent(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Min(v, 100))
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
