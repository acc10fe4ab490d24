package catalog

import "strings"

// Category pairs a normalized code with its display name and fixed color.
type Category struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryTable is a fixed, externally supplied code→(name, color) mapping.
// Iteration order is the table order, which the legend preserves.
type CategoryTable []Category

// NormalizeCode strips the hyphens and whitespace that raw feature codes may
// carry but table keys never do ("Histo-Fluviosol" → "HistoFluviosol").
func NormalizeCode(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t', '\n':
			return -1
		}
		return r
	}, raw)
}

// Lookup resolves a raw category code. Unmapped codes fall back to the raw
// code as display name with the supplied default color.
func (t CategoryTable) Lookup(raw, defaultColor string) Category {
	key := NormalizeCode(raw)
	for _, c := range t {
		if c.Code == key {
			return c
		}
	}
	return Category{Code: key, Name: raw, Color: defaultColor}
}

// SoilTypes is the soil classification palette.
var SoilTypes = CategoryTable{
	{Code: "Colluviosol", Name: "Colluviosol", Color: "#8c510a"},
	{Code: "Podzosol", Name: "Podzosol", Color: "#b35806"},
	{Code: "Rankosol", Name: "Rankosol", Color: "#d8b365"},
	{Code: "Epihistosol", Name: "Epihistosol", Color: "#f6e8c3"},
	{Code: "Histosol", Name: "Histosol", Color: "#d1e5f0"},
	{Code: "HistoFluviosol", Name: "Histo-Fluviosol", Color: "#67a9cf"},
	{Code: "Fluviosol", Name: "Fluviosol", Color: "#2166ac"},
}

// Vegetations is the vegetation classification palette.
var Vegetations = CategoryTable{
	{Code: "RV", Name: "Rhododendron-Vaccinion", Color: "#4d9221"},
	{Code: "Na", Name: "Nardion", Color: "#a1d76a"},
	{Code: "Cal", Name: "Calthion", Color: "#d9f0d3"},
	{Code: "Cro", Name: "Caricetum rostratae", Color: "#c7eae5"},
	{Code: "Cd", Name: "Caricion davallianae", Color: "#5ab4ac"},
	{Code: "Cfu", Name: "Caricion fuscae", Color: "#01665e"},
}
