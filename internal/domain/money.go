package domain

import (
	"math"
	"strconv"
)

// FormatMoney выводит сумму с двумя знаками после запятой и символом валюты: €200.00
func FormatMoney(amount float64, symbol string) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	rounded := math.Round(amount*100) / 100
	if rounded == 0 {
		rounded = 0 // -0 -> 0
	}
	if rounded < 0 {
		return "-" + symbol + strconv.FormatFloat(-rounded, 'f', 2, 64)
	}
	return symbol + strconv.FormatFloat(rounded, 'f', 2, 64)
}
