package ports

import "io"

// RawRow fila sin tipar de un archivo de importación. Row es 1-based sin contar el encabezado;
// Fields va indexado por el encabezado tal como viene en el archivo.
type RawRow struct {
	Row    int
	Fields map[string]string
}

// SpreadsheetParser convierte archivos tabulares (primera fila = encabezados) en filas.
type SpreadsheetParser interface {
	ParseCSV(r io.Reader) ([]RawRow, error)
	ParseXLSX(r io.Reader) ([]RawRow, error)
}
