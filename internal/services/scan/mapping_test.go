package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/purescan-ai/purescan-backend/internal/genai"
	"github.com/purescan-ai/purescan-backend/internal/models"
)

func TestBucketStatus(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{10, models.StatusSafe},
		{8.0, models.StatusSafe}, // граница входит в safe
		{7.9, models.StatusWarning},
		{6.2, models.StatusWarning},
		{5.0, models.StatusWarning}, // граница входит в warning
		{4.9, models.StatusDanger},
		{0, models.StatusDanger},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bucketStatus(tt.score), "score %v", tt.score)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "6.2", formatScore(6.2))
	assert.Equal(t, "10", formatScore(10))
	assert.Equal(t, "0", formatScore(0))
	assert.Equal(t, "7.25", formatScore(7.25))
}

func TestMapAudit_Defaults(t *testing.T) {
	raw := &genai.RawAudit{}
	raw.Analysis.Score = 3.5
	raw.Ingredients.Items = []genai.RawIngredient{{Name: "E322"}}
	raw.Additives = []genai.RawAdditive{{Code: "E322", Name: "Лецитин"}}

	result := mapAudit(raw, models.ScanInput{ImageBase64: "aW1n"})

	// Отсутствующие поля добиваются значениями по умолчанию.
	assert.Equal(t, "Продукт", result.ProductName)
	assert.Equal(t, models.StatusDanger, result.Status)
	assert.Equal(t, models.IngredientNeutral, result.Ingredients[0].Status)
	assert.Equal(t, models.RiskMedium, result.Additives[0].RiskLevel)
	assert.NotNil(t, result.Pros)
	assert.NotNil(t, result.Cons)
	assert.Empty(t, result.Pros)
	assert.Equal(t, "aW1n", result.ImageData)
	assert.NotEmpty(t, result.ID)
}

func TestMapAudit_Nutrients(t *testing.T) {
	raw := &genai.RawAudit{}
	raw.Analysis.Score = 8.4
	raw.Nutrition.Kcal = 250
	raw.Nutrition.Sugar = 12

	result := mapAudit(raw, models.ScanInput{})

	assert.Len(t, result.Nutrients, 2)

	kcal := result.Nutrients[0]
	assert.Equal(t, "Ккал", kcal.Label)
	assert.Equal(t, "250", kcal.Value)
	assert.Equal(t, 25, kcal.Percentage)

	sugar := result.Nutrients[1]
	assert.Equal(t, "Сахар", sugar.Label)
	assert.Equal(t, "12г", sugar.Value)
	assert.Equal(t, "bad", sugar.Status)
	assert.Equal(t, 24, sugar.Percentage)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, clampPercent(-5))
	assert.Equal(t, 50, clampPercent(50))
	assert.Equal(t, 100, clampPercent(160))
}
