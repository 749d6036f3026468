package rubles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"smeta-backend/internal/rubles"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "Ноль рублей 00 копеек"},
		{"one keeps the feminine unit word", 1, "Одна рубль 00 копеек"},
		{"two", 2, "Две рубля 00 копеек"},
		{"five", 5, "Пять рублей 00 копеек"},
		{"teen takes plural form", 11, "Одиннадцать рублей 00 копеек"},
		{"twenty one", 21.50, "Двадцать одна рубль 50 копеек"},
		{"hundred", 100, "Сто рублей 00 копеек"},
		{"thousands", 1234.56, "Одна тысяча двести тридцать четыре рубля 56 копеек"},
		{"two thousand", 2000, "Две тысячи рублей 00 копеек"},
		{"millions", 5000000, "Пять миллионов рублей 00 копеек"},
		{"billion", 1_000_000_000, "Одна миллиард рублей 00 копеек"},
		{"billions with millions", 2_500_000_000, "Две миллиарда пятьсот миллионов рублей 00 копеек"},
		{"kopeck singular", 10.41, "Десять рублей 41 копейка"},
		{"kopeck few", 3.02, "Три рубля 02 копейки"},
		{"kopecks only", 0.99, "Ноль рублей 99 копеек"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rubles.Amount(tt.amount))
		})
	}
}

func TestAmount_StartsCapitalized(t *testing.T) {
	got := rubles.Amount(42)
	assert.Equal(t, "С", string([]rune(got)[0]))
}
