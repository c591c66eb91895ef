package ports

import "context"

// ImportExtractor define el puerto de salida hacia un LLM que convierte texto libre
// (exportaciones de sistemas legados, texto de PDF) en filas clave → valor.
// El resultado no es confiable: la aplicación valida y normaliza cada fila.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type ImportExtractor interface {
	ExtractRows(ctx context.Context, content, entityType string) ([]map[string]string, error)
}
