package service

import "strings"

// normalizarDoc strips everything but digits from a document, barcode, digit
// line or guide number.
func normalizarDoc(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ehCNPJ reports whether the normalized document has the 14 digits of a CNPJ.
func ehCNPJ(s string) bool {
	return len(normalizarDoc(s)) == 14
}

// raizCNPJ returns the 8-digit root of a CNPJ, identifying the company
// across branch registrations.
func raizCNPJ(s string) string {
	d := normalizarDoc(s)
	if len(d) < 8 {
		return d
	}
	return d[:8]
}

// sufixoGuia returns the last n digits of the normalized guide number.
func sufixoGuia(guia string, n int) string {
	d := normalizarDoc(guia)
	if len(d) <= n {
		return d
	}
	return d[len(d)-n:]
}

// docTerminaComSufixo reports whether the normalized document number ends
// with the last minLen digits of the normalized guide number.
func docTerminaComSufixo(numDoc, guia string, minLen int) bool {
	a := normalizarDoc(numDoc)
	b := sufixoGuia(guia, minLen)
	if a == "" || b == "" {
		return false
	}
	return strings.HasSuffix(a, b)
}
