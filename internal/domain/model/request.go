package model

import (
	"fmt"
	"strconv"
	"strings"
)

// CalculationRequest carries the physical dimensions and material system
// choice for one quantitative computation. It is a value object: two
// requests with identical normalized fields are the same question and must
// produce the same cached answer.
//
// @Description Dimensions and material system for a quantitative quote
type CalculationRequest struct {
	// AreaTelhado is the roof area in m². Required, > 0.
	AreaTelhado float64 `json:"area_telhado" example:"100"`
	// ComprimentoCumeeira is the ridge length in meters.
	ComprimentoCumeeira float64 `json:"comprimento_cumeeira" example:"8.5"`
	// ComprimentoEspigao is the hip length in meters.
	ComprimentoEspigao float64 `json:"comprimento_espigao" example:"0"`
	// ComprimentoAguaFurtada is the valley length in meters.
	ComprimentoAguaFurtada float64 `json:"comprimento_agua_furtada" example:"0"`
	// Perimetro is the roof perimeter in meters.
	Perimetro float64 `json:"perimetro" example:"42"`
	// Sistema selects the material system (e.g. a shingle line).
	Sistema string `json:"sistema" example:"shingle-supreme"`
}

// DefaultSistema is applied when a request does not name a material system.
const DefaultSistema = "shingle-supreme"

// Normalize returns a copy with defaulted optional fields. Missing numeric
// fields stay at 0; a missing sistema becomes DefaultSistema. Fingerprints
// are only taken from normalized requests.
func (r CalculationRequest) Normalize() CalculationRequest {
	n := r
	n.Sistema = strings.TrimSpace(strings.ToLower(n.Sistema))
	if n.Sistema == "" {
		n.Sistema = DefaultSistema
	}
	return n
}

// Fingerprint encodes the normalized request as a canonical cache key.
// Field order is fixed so that equal requests always collide.
func (r CalculationRequest) Fingerprint() string {
	var b strings.Builder
	b.Grow(96)
	writeDim(&b, "area", r.AreaTelhado)
	writeDim(&b, "cumeeira", r.ComprimentoCumeeira)
	writeDim(&b, "espigao", r.ComprimentoEspigao)
	writeDim(&b, "aguafurtada", r.ComprimentoAguaFurtada)
	writeDim(&b, "perimetro", r.Perimetro)
	fmt.Fprintf(&b, "sistema=%s", r.Sistema)
	return b.String()
}

func writeDim(b *strings.Builder, name string, v float64) {
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	b.WriteByte('|')
}
