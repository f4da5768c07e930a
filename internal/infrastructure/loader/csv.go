package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV decodifica el contenido (UTF-8 o Windows-1252), detecta el separador
// en la línea de cabecera y devuelve las filas tal cual.
func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decodificar windows-1252: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsear csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// sniffDelimiter elige entre coma, punto y coma y tabulador según cuál aparece
// más veces fuera de comillas en la primera línea. Empate o ninguno → coma.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	counts := map[byte]int{}
	inQuotes := false
	for _, b := range line {
		switch {
		case b == '"':
			inQuotes = !inQuotes
		case !inQuotes && (b == ',' || b == ';' || b == '\t'):
			counts[b]++
		}
	}

	best, bestCount := byte(','), counts[',']
	for _, cand := range []byte{';', '\t'} {
		if counts[cand] > bestCount {
			best, bestCount = cand, counts[cand]
		}
	}
	return rune(best)
}
