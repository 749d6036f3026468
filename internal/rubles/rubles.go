// Package rubles renders a ruble amount as a Russian phrase for legal
// documents ("Триста двадцать одна рубль 50 копеек").
//
// The unit words "одна"/"две" are used in the feminine form for both rubles
// and kopecks. That is how the original tool behaves, so the output is kept
// byte-for-byte compatible rather than grammatically corrected for the
// masculine "рубль".
package rubles

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

var (
	unitWords = [10]string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	teenWords = [10]string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать", "пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	tenWords  = [10]string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	hundreds  = [10]string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"}

	rubleForms    = [3]string{"рубль", "рубля", "рублей"}
	kopeckForms   = [3]string{"копейка", "копейки", "копеек"}
	thousandForms = [3]string{"тысяча", "тысячи", "тысяч"}
	millionForms  = [3]string{"миллион", "миллиона", "миллионов"}
	billionForms  = [3]string{"миллиард", "миллиарда", "миллиардов"}
)

// morph picks the noun form agreeing with n: 11-19 take the genitive plural,
// a last digit of 1 the nominative, 2-4 the genitive singular, everything
// else the genitive plural.
func morph(n int64, forms [3]string) string {
	tail := n % 100
	if tail >= 11 && tail <= 19 {
		return forms[2]
	}
	switch tail % 10 {
	case 1:
		return forms[0]
	case 2, 3, 4:
		return forms[1]
	default:
		return forms[2]
	}
}

// triple spells out 0 < n < 1000, omitting zero-valued components.
func triple(n int) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}
	rest := n % 100
	if rest >= 10 && rest <= 19 {
		parts = append(parts, teenWords[rest-10])
	} else {
		if t := rest / 10; t >= 2 {
			parts = append(parts, tenWords[t])
		}
		if u := rest % 10; u > 0 {
			parts = append(parts, unitWords[u])
		}
	}
	return strings.Join(parts, " ")
}

func words(n int64) string {
	if n == 0 {
		return "ноль"
	}
	var parts []string
	if b := n / 1_000_000_000; b > 0 {
		parts = append(parts, triple(int(b)), morph(b, billionForms))
	}
	if m := (n / 1_000_000) % 1000; m > 0 {
		parts = append(parts, triple(int(m)), morph(m, millionForms))
	}
	if k := (n / 1000) % 1000; k > 0 {
		parts = append(parts, triple(int(k)), morph(k, thousandForms))
	}
	if r := n % 1000; r > 0 {
		parts = append(parts, triple(int(r)))
	}
	return strings.Join(parts, " ")
}

// Amount renders a non-negative ruble amount as a capitalized phrase. Zero
// kopecks are spelled out explicitly as "00 копеек".
func Amount(amount float64) string {
	rub := int64(math.Floor(amount))
	kop := int64(math.Round((amount - math.Floor(amount)) * 100))
	phrase := fmt.Sprintf("%s %s %02d %s",
		words(rub), morph(rub, rubleForms), kop, morph(kop, kopeckForms))
	runes := []rune(phrase)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
