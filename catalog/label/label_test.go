package label

import (
	"testing"

	"vehicle-catalog-api/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name           string
		entity         string
		parentSelected bool
		ancestors      []string
		want           string
	}{
		{"parent selected", "X5", true, []string{"BMW"}, "X5"},
		{"composite", "X5", false, []string{"BMW"}, "BMW - X5"},
		{"three levels", "G05", false, []string{"BMW", "X5"}, "BMW - X5 - G05"},
		{"missing ancestor", "X5", false, []string{""}, "Unknown - X5"},
		{"blank ancestor", "G05", false, []string{"BMW", "  "}, "BMW - Unknown - G05"},
		{"root", "BMW", false, nil, "BMW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLabel(tt.entity, tt.parentSelected, tt.ancestors...))
		})
	}
}

func TestModelLabel(t *testing.T) {
	m := models.Model{Name: "X5", Brand: &models.Brand{Name: "BMW"}}

	assert.Equal(t, "BMW - X5", ModelLabel(m, false))
	assert.Equal(t, "X5", ModelLabel(m, true))
}

func TestModelLabel_MissingBrand(t *testing.T) {
	assert.Equal(t, "Unknown - X5", ModelLabel(models.Model{Name: "X5"}, false))
}

func TestGenerationLabel(t *testing.T) {
	g := models.Generation{
		Name: "G05",
		Model: &models.Model{
			Name:  "X5",
			Brand: &models.Brand{Name: "BMW"},
		},
	}

	assert.Equal(t, "BMW - X5 - G05", GenerationLabel(g, false))
	assert.Equal(t, "G05", GenerationLabel(g, true))
	assert.Equal(t, "Unknown - Unknown - F15", GenerationLabel(models.Generation{Name: "F15"}, false))
	assert.Equal(t, "Unknown - X5 - G05", GenerationLabel(models.Generation{Name: "G05", Model: &models.Model{Name: "X5"}}, false))
}

func TestEquipmentLabel(t *testing.T) {
	a := models.EquipmentAssignment{
		Brand: &models.Brand{Name: "BMW"},
		Item:  &models.EquipmentItem{Name: "Head-up display"},
	}

	assert.Equal(t, "BMW - Head-up display", EquipmentLabel(a, false))
	assert.Equal(t, "Head-up display", EquipmentLabel(a, true))
}
