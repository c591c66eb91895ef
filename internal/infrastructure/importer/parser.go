// Package importer lee archivos tabulares de sistemas legados (CSV y XLSX).
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
)

var _ ports.SpreadsheetParser = (*Parser)(nil)

// Errores del parser (envuelven domain.ErrInvalidInput para mapear a 400).
var (
	ErrEmptyFile     = fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	ErrMissingHeader = fmt.Errorf("%w: falta la fila de encabezados", domain.ErrInvalidInput)
	ErrFileTooLarge  = fmt.Errorf("%w: archivo demasiado grande", domain.ErrInvalidInput)
)

// DefaultMaxFileSize límite de lectura por archivo.
const DefaultMaxFileSize int64 = 32 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser implementa ports.SpreadsheetParser.
type Parser struct {
	maxBytes int64
}

// NewParser construye el parser con DefaultMaxFileSize.
func NewParser() *Parser { return NewParserWithLimit(DefaultMaxFileSize) }

// NewParserWithLimit construye el parser con un límite de bytes propio.
func NewParserWithLimit(maxBytes int64) *Parser {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}
	return &Parser{maxBytes: maxBytes}
}

// readAll lee el archivo completo; uno que supere el límite se rechaza en vez de truncarse.
func (p *Parser) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > p.maxBytes {
		return nil, fmt.Errorf("%w (máximo %d bytes)", ErrFileTooLarge, p.maxBytes)
	}
	return data, nil
}

// ParseCSV lee un CSV con encabezados. Acepta UTF-8 (con o sin BOM) o Windows-1252,
// y separador ',' ';' o tabulador (se detecta en la primera línea).
func (p *Parser) ParseCSV(r io.Reader) ([]ports.RawRow, error) {
	data, err := p.readAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(data) {
		// Exportaciones de Excel/Access en Windows
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: codificación no soportada", domain.ErrInvalidInput)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: CSV inválido en línea %d: %v", domain.ErrInvalidInput, perr.Line, perr.Err)
		}
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	return toRows(records)
}

// ParseXLSX lee la primera hoja de un libro XLSX; la primera fila son los encabezados.
func (p *Parser) ParseXLSX(r io.Reader) ([]ports.RawRow, error) {
	data, err := p.readAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer XLSX: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: XLSX inválido: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	return toRows(records)
}

func toRows(records [][]string) ([]ports.RawRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	header := make([]string, len(records[0]))
	hasHeader := false
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
		if header[i] != "" {
			hasHeader = true
		}
	}
	if !hasHeader {
		return nil, ErrMissingHeader
	}

	rows := make([]ports.RawRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		fields := make(map[string]string, len(header))
		for col, value := range rec {
			if col >= len(header) || header[col] == "" {
				continue
			}
			fields[header[col]] = strings.TrimSpace(value)
		}
		rows = append(rows, ports.RawRow{Row: i + 1, Fields: fields})
	}
	return rows, nil
}

func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
