package entities

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestPet_Age(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		birth    *time.Time
		expected *int
	}{
		{name: "sem data de nascimento", birth: nil, expected: nil},
		{name: "aniversário já passou", birth: date(2021, time.June, 10), expected: intPtr(5)},
		{name: "aniversário hoje", birth: date(2021, time.June, 15), expected: intPtr(5)},
		{name: "aniversário ainda não chegou", birth: date(2021, time.June, 16), expected: intPtr(4)},
		{name: "nascido este ano", birth: date(2026, time.January, 1), expected: intPtr(0)},
		{name: "nascido em 29 de fevereiro", birth: date(2024, time.February, 29), expected: intPtr(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet := &Pet{DataNascimento: tt.birth}
			result := pet.Age(now)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("esperava nil, obteve %d", *result)
				}
				return
			}
			if result == nil {
				t.Fatalf("esperava %d, obteve nil", *tt.expected)
			}
			if *result != *tt.expected {
				t.Errorf("esperava %d, obteve %d", *tt.expected, *result)
			}
		})
	}
}

func TestPet_FormattedWeight(t *testing.T) {
	tests := []struct {
		name     string
		peso     *float64
		expected string
	}{
		{name: "peso com uma casa decimal", peso: floatPtr(35.5), expected: "35.50 kg"},
		{name: "peso inteiro", peso: floatPtr(4), expected: "4.00 kg"},
		{name: "peso pequeno", peso: floatPtr(0.09), expected: "0.09 kg"},
		{name: "peso zero", peso: floatPtr(0), expected: "0.00 kg"},
		{name: "peso máximo", peso: floatPtr(999.99), expected: "999.99 kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet := &Pet{Peso: tt.peso}
			result := pet.FormattedWeight()
			if result == nil {
				t.Fatal("esperava peso formatado, obteve nil")
			}
			if *result != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, *result)
			}
		})
	}

	t.Run("sem peso retorna nil", func(t *testing.T) {
		pet := &Pet{}
		if pet.FormattedWeight() != nil {
			t.Error("esperava nil para pet sem peso")
		}
	})
}

func TestPet_DerivedFieldsOnDeletedPet(t *testing.T) {
	deletedAt := time.Now()
	pet := &Pet{
		DataNascimento: date(2020, time.January, 1),
		Peso:           floatPtr(10),
		DeletedAt:      &deletedAt,
	}

	if !pet.IsDeleted() {
		t.Error("esperava pet marcado como removido")
	}
	if pet.Age(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)) == nil {
		t.Error("idade deve continuar calculável em pets removidos")
	}
	if pet.FormattedWeight() == nil {
		t.Error("peso formatado deve continuar calculável em pets removidos")
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"Macho", true},
		{"Fêmea", true},
		{"Desconhecido", true},
		{"macho", false},
		{"Male", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, ok := ParseGender(tt.value)
			if ok != tt.ok {
				t.Errorf("para '%s', esperava %v, obteve %v", tt.value, tt.ok, ok)
			}
		})
	}
}

func TestNewFormOptions_ReturnsCopies(t *testing.T) {
	opts := NewFormOptions()
	opts.Genders[0] = "Alterado"
	opts.CommonSpecies[0] = "Alterado"

	if Genders[0] != GenderMale {
		t.Error("alterar as opções não deve modificar a enumeração de gêneros")
	}
	if CommonSpecies[0] != "Cachorro" {
		t.Error("alterar as opções não deve modificar as espécies comuns")
	}
}

func TestAccessToken_IsExpired(t *testing.T) {
	now := time.Now()
	token := &AccessToken{ExpiresAt: now.Add(time.Minute)}

	if token.IsExpired(now) {
		t.Error("token ainda não deveria estar expirado")
	}
	if !token.IsExpired(now.Add(2 * time.Minute)) {
		t.Error("token deveria estar expirado")
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
