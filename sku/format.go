package sku

import "strconv"

// formatação de valores numéricos para headers, sem notação científica.

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
