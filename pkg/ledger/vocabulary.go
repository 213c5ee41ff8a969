package ledger

import (
	"encoding/json"
	"fmt"
	"os"
)

// Vocabulary maps a normalized mark spelling to its quantity in litres. It is
// configuration, not logic: new misread variants observed in the field go into
// the table (or the JSON file behind Load), never into resolution code.
type Vocabulary map[string]float64

// DefaultVocabulary covers the canonical register marks plus the OCR misreads
// of the 1.5-litre "911" mark seen so far, built from the usual 9/g/q and
// 1/l/i confusions. "x" means no delivery that day and maps to zero litres.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"9": 1,
		"x": 0,

		"911":  1.5,
		"9111": 1.5,
		"9ii":  1.5,
		"9ll":  1.5,
		"9il":  1.5,
		"9li":  1.5,
		"91l":  1.5,
		"9l1":  1.5,
		"9i1":  1.5,
		"91i":  1.5,
		"q11":  1.5,
		"qll":  1.5,
		"g11":  1.5,
		"gll":  1.5,
		"3y1":  1.5,
	}
}

// Lookup resolves a raw token. A miss returns ok=false; zero litres is a
// legitimate mapped value (the no-delivery mark), not a miss.
func (v Vocabulary) Lookup(token string) (float64, bool) {
	q, ok := v[NormalizeToken(token)]
	return q, ok
}

// Validate is the startup self-check. Every key must be non-empty, already in
// normalized form (otherwise it could never match and would shadow the entry
// that does), and map to a non-negative quantity. A violation is a
// configuration defect and should be fatal at startup, not recovered.
func (v Vocabulary) Validate() error {
	for k, q := range v {
		if k == "" {
			return fmt.Errorf("vocabulary: empty token")
		}
		if n := NormalizeToken(k); n != k {
			return fmt.Errorf("vocabulary: token %q is not normalized (want %q)", k, n)
		}
		if q < 0 {
			return fmt.Errorf("vocabulary: token %q maps to negative quantity %v", k, q)
		}
	}
	return nil
}

// Load reads a vocabulary from a JSON object file {"token": litres, ...} and
// validates it, so misread coverage can be extended without a rebuild.
func Load(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var v Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}
