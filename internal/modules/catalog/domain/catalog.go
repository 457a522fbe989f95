package domain

import "strings"

// Catalog holds the three option lists the sheet provides. Degraded means
// the remote fetch failed and the built-in fallback lists are in use.
type Catalog struct {
	Programs   []string
	Students   []string
	Therapists []string
	Degraded   bool
}

// Fallback is the built-in catalog used whenever the endpoint is unset or
// unreachable. Entries match the sheet's seed data.
func Fallback() Catalog {
	return Catalog{
		Programs: []string{
			"Identificación de Colores",
			"Seguimiento de Instrucciones",
			"Imitación Motora",
			"Emparejamiento",
			"Tacto (Nombrar)",
			"Intraverbales",
			"Ecoicas",
		},
		Students: []string{
			"Estudiante Prueba",
			"Alessandra G",
		},
		Therapists: []string{
			"Terapeuta Prueba",
			"Celeste M",
		},
		Degraded: true,
	}
}

// FilterPrograms returns the catalog entries containing term,
// case-insensitively. An empty term returns everything.
func (c Catalog) FilterPrograms(term string) []string {
	if strings.TrimSpace(term) == "" {
		return append([]string(nil), c.Programs...)
	}
	needle := strings.ToLower(term)
	var out []string
	for _, p := range c.Programs {
		if strings.Contains(strings.ToLower(p), needle) {
			out = append(out, p)
		}
	}
	return out
}

// HasExactProgram reports whether term matches a catalog entry exactly,
// ignoring case. When it does not, the picker offers creating a new program
// under that name.
func (c Catalog) HasExactProgram(term string) bool {
	for _, p := range c.Programs {
		if strings.EqualFold(p, term) {
			return true
		}
	}
	return false
}

// Empty reports whether all three lists are empty, which is worth a warning
// even on a successful fetch.
func (c Catalog) Empty() bool {
	return len(c.Programs) == 0 && len(c.Students) == 0 && len(c.Therapists) == 0
}
