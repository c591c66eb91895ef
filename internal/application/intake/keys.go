package intake

import "strings"

// keyAliases sinónimos de encabezados de sistemas legados → clave interna.
var keyAliases = map[string]string{
	// clientes
	"customer":       "name",
	"customer_name":  "name",
	"company":        "name",
	"company_name":   "name",
	"full_name":      "name",
	"account_name":   "name",
	"e_mail":         "email",
	"email_address":  "email",
	"mail":           "email",
	"phone_number":   "phone",
	"telephone":      "phone",
	"tel":            "phone",
	"mobile":         "phone",
	"address":        "street",
	"street_address": "street",
	"zipcode":        "zip",
	"zip_code":       "zip",
	"postal_code":    "zip",
	"notes":          "internal_notes",

	// inventario
	"model":      "model_number",
	"model_no":   "model_number",
	"model_#":    "model_number",
	"serial":     "serial_number",
	"serial_no":  "serial_number",
	"sn":         "serial_number",
	"vin":        "serial_number",
	"part":       "part_number",
	"part_no":    "part_number",
	"pn":         "part_number",
	"qty":        "quantity",
	"units":      "quantity",
	"unit_price": "price",
	"list_price": "price",
	"unit_cost":  "cost",
	"category":   "type",
	"item_type":  "type",

	// pagos
	"payment_date":   "date",
	"paid_on":        "date",
	"total":          "amount",
	"payment_amount": "amount",
	"amount_paid":    "amount",
	"payment_method": "method",
	"paid_via":       "method",
	"invoice":        "invoice_id",
	"invoice_no":     "invoice_id",
	"invoice_number": "invoice_id",
	"quote":          "invoice_id",
	"quote_id":       "invoice_id",
	"client_id":      "customer_id",
	"account_id":     "customer_id",
}

// NormalizeKey pasa un encabezado a snake_case en minúsculas y resuelve sinónimos.
func NormalizeKey(raw string) string {
	k := strings.ToLower(strings.TrimSpace(raw))
	k = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(k)
	for strings.Contains(k, "__") {
		k = strings.ReplaceAll(k, "__", "_")
	}
	k = strings.Trim(k, "_")
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}

// normalizeFields reindexa los campos por clave normalizada. Valores vacíos se descartan.
func normalizeFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out[NormalizeKey(k)] = v
	}
	return out
}
