package expiration

import (
	"sort"
	"time"
)

// Input es lo mínimo que el motor necesita de una entrada del botiquín.
type Input struct {
	ID          string
	BoxDate     string
	OpeningDate string
	Rule        Rule
}

type Entry struct {
	Input    Input
	Position int // posición en la colección original

	Status   Status
	Severity Severity
	Err      error
}

// Classification separa vigentes y vencidos, cada grupo ordenado por vencimiento efectivo.
// Las entradas cuyo cálculo falló van aparte, en orden de inserción.
type Classification struct {
	Active  []Entry
	Expired []Entry
	Invalid []Entry
}

func ClassifyAndSort(items []Input, today time.Time, p Policy) Classification {
	out := Classification{
		Active:  make([]Entry, 0, len(items)),
		Expired: make([]Entry, 0),
		Invalid: make([]Entry, 0),
	}

	for i, in := range items {
		e := Entry{Input: in, Position: i}

		st, err := Compute(in.BoxDate, in.OpeningDate, in.Rule, today)
		if err != nil {
			e.Err = err
			out.Invalid = append(out.Invalid, e)
			continue
		}
		e.Status = st
		e.Severity = p.Severity(st)

		if st.IsExpired {
			out.Expired = append(out.Expired, e)
		} else {
			out.Active = append(out.Active, e)
		}
	}

	SortByEffectiveExpiry(out.Active)
	SortByEffectiveExpiry(out.Expired)
	SortByEffectiveExpiry(out.Invalid)
	return out
}

// SortByEffectiveExpiry ordena ascendente y estable (empates respetan el orden previo).
func SortByEffectiveExpiry(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return sortKey(entries[i]).Before(sortKey(entries[j]))
	})
}

func sortKey(e Entry) time.Time {
	if e.Err != nil || e.Status.EffectiveExpiry.IsZero() {
		return FarFuture
	}
	return e.Status.EffectiveExpiry
}
