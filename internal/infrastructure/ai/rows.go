package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// extractSystemPrompt define el rol del modelo y las claves internas por entidad.
const extractSystemPrompt = `You are a data migration expert for a heavy-equipment logistics company.
Map the input fields to internal keys and return ONLY a JSON array of flat objects (no markdown, no prose).
Customers use: name, email, phone, street, city, state, zip, country.
Inventory use: name, description, model_number, serial_number, part_number, quantity, price, cost, type (equipment/part).
Payments use: amount, date (YYYY-MM-DD), method (Bank Transfer/Credit Card/Check), invoice_id, customer_id.
Handle messy text or PDF output. If a value is missing, omit the field. Never invent values.`

// maxResponseBytes límite de lectura de la respuesta del proveedor.
const maxResponseBytes = 512 * 1024

func extractUserPrompt(content, entityType string) string {
	return fmt.Sprintf("Parse the following legacy data into a JSON array for the entity: %s.\nData:\n%s", entityType, content)
}

// jsonArrayRe captura desde el primer '[' hasta el último ']'.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// extractJSONArray quita bloques markdown y devuelve el arreglo JSON del texto.
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "[") {
		return text
	}
	return strings.TrimSpace(jsonArrayRe.FindString(text))
}

// decodeRows convierte la respuesta del modelo en filas clave → texto.
// Los números se conservan tal cual (json.Number) para no perder precisión en montos.
func decodeRows(text string) ([]map[string]string, error) {
	raw := extractJSONArray(text)
	if raw == "" {
		return nil, fmt.Errorf("AI: no se encontró un arreglo JSON en la respuesta (respuesta: %.200s)", text)
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("AI: parsear arreglo JSON: %w", err)
	}

	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		row := make(map[string]string, len(item))
		for k, v := range item {
			switch val := v.(type) {
			case nil:
				continue
			case string:
				row[k] = val
			case json.Number:
				row[k] = val.String()
			case bool:
				row[k] = fmt.Sprint(val)
			default:
				b, _ := json.Marshal(val)
				row[k] = string(b)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
