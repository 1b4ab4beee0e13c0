package produtos

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Produto representa un registro persistido en DB.
// Las claves JSON son las del contrato original del frontend (portugués).
type Produto struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome"`
	Preco     float64 `json:"preco"`
	Descricao *string `json:"descricao"`
}

// ProdutoInput representa el payload de create/update.
// Update es siempre de fila completa; no hay actualización parcial.
type ProdutoInput struct {
	Nome      string  `json:"nome"`
	Preco     Preco   `json:"preco"`
	Descricao *string `json:"descricao,omitempty"`
}

// Preco conserva la representación JSON cruda que mandó el cliente
// (string "9.99" o número 9.99). El eco de create/update la devuelve
// tal cual; a la DB va el float ya parseado.
type Preco struct {
	raw json.RawMessage
}

func (preco *Preco) UnmarshalJSON(data []byte) error {
	preco.raw = append(preco.raw[:0], data...)
	return nil
}

func (preco Preco) MarshalJSON() ([]byte, error) {
	if len(preco.raw) == 0 {
		return []byte("null"), nil
	}
	return preco.raw, nil
}

// Missing indica si el campo no vino, vino null o vino string vacío.
func (preco Preco) Missing() bool {
	switch strings.TrimSpace(string(preco.raw)) {
	case "", "null", `""`:
		return true
	}
	return false
}

// Float parsea el valor crudo como número, acepte string o literal numérico.
func (preco Preco) Float() (float64, error) {
	raw := strings.TrimSpace(string(preco.raw))

	literal := raw
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(preco.raw, &literal); err != nil {
			return 0, err
		}
		literal = strings.TrimSpace(literal)
	}

	return strconv.ParseFloat(literal, 64)
}
