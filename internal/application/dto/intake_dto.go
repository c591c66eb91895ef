package dto

// Entidades aceptadas por POST /api/intake/:entity.
const (
	IntakeEntityCustomers = "customers"
	IntakeEntityInventory = "inventory"
	IntakeEntityPayments  = "payments"
)

// Fuentes de datos de la ingesta.
const (
	IntakeSourceCSV  = "csv"
	IntakeSourceXLSX = "xlsx"
	IntakeSourceText = "text"
)

// IntakeRowError error de normalización de una fila del origen (Row es 1-based, sin contar encabezado).
type IntakeRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// IntakeResponse resultado de una ingesta. En dry run Records trae las filas normalizadas
// y Result va vacío; si no, Result trae el detalle de la escritura.
type IntakeResponse struct {
	Entity  string           `json:"entity"`
	Source  string           `json:"source"`
	DryRun  bool             `json:"dry_run"`
	Rows    int              `json:"rows"`
	Valid   int              `json:"valid"`
	Errors  []IntakeRowError `json:"errors"`
	Records []any            `json:"records,omitempty"`
	Result  *BulkResponse    `json:"result,omitempty"`
}
