package loader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Límite de repeticiones que se materializan; las hojas de cálculo suelen
// declarar miles de filas/celdas vacías repetidas al final.
const maxODSRepeat = 10000

// readODS lee la primera tabla de content.xml de un documento OpenDocument.
func readODS(data []byte) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("abrir ods: %w", err)
	}
	content, err := readZipEntry(zr, "content.xml")
	if err != nil {
		return nil, err
	}
	return parseODSContent(content)
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("falta %s", name)
}

type odsCell struct {
	value  string
	repeat int
}

// parseODSContent recorre los tokens XML de la primera <table:table>.
// Celdas y filas repetidas se expanden; las vacías al final de una fila o de la tabla se ignoran.
func parseODSContent(content []byte) ([][]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		rows       [][]string
		cells      []odsCell
		rowRepeat  int
		inTable    bool
		inCell     bool
		cell       odsCell
		text       strings.Builder
		paragraphs int
		attrValue  string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsear content.xml: %w", err)
		}

		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "table":
				if inTable {
					// subtablas no soportadas
					if err := dec.Skip(); err != nil {
						return nil, fmt.Errorf("parsear content.xml: %w", err)
					}
					continue
				}
				inTable = true
			case "table-row":
				if !inTable {
					continue
				}
				cells = cells[:0]
				rowRepeat = repeatAttr(se, "number-rows-repeated")
			case "table-cell", "covered-table-cell":
				if !inTable {
					continue
				}
				inCell = true
				cell = odsCell{repeat: repeatAttr(se, "number-columns-repeated")}
				attrValue = typedValue(se)
				text.Reset()
				paragraphs = 0
			case "annotation":
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parsear content.xml: %w", err)
				}
			case "p":
				if inCell {
					if paragraphs > 0 {
						text.WriteByte('\n')
					}
					paragraphs++
				}
			case "s":
				if inCell {
					text.WriteString(strings.Repeat(" ", repeatAttr(se, "c")))
				}
			case "tab":
				if inCell {
					text.WriteByte('\t')
				}
			case "line-break":
				if inCell {
					text.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inCell {
				text.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "table-cell", "covered-table-cell":
				if !inCell {
					continue
				}
				inCell = false
				cell.value = attrValue
				if cell.value == "" {
					cell.value = text.String()
				}
				cells = append(cells, cell)
			case "table-row":
				if !inTable {
					continue
				}
				row := expandCells(cells)
				if blankRow(row) {
					continue
				}
				for i := 0; i < min(rowRepeat, maxODSRepeat); i++ {
					rows = append(rows, append([]string(nil), row...))
				}
			case "table":
				if inTable {
					return rows, nil
				}
			}
		}
	}
	if !inTable {
		return nil, fmt.Errorf("content.xml sin tablas")
	}
	return rows, nil
}

// expandCells aplica number-columns-repeated descartando las celdas vacías finales.
func expandCells(cells []odsCell) []string {
	last := len(cells) - 1
	for last >= 0 && strings.TrimSpace(cells[last].value) == "" {
		last--
	}
	var out []string
	for _, c := range cells[:last+1] {
		for i := 0; i < min(c.repeat, maxODSRepeat); i++ {
			out = append(out, c.value)
		}
	}
	return out
}

// typedValue devuelve office:value (numéricos), office:date-value o
// office:boolean-value; "" para celdas de texto.
func typedValue(se xml.StartElement) string {
	var valueType string
	values := map[string]string{}
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "value-type":
			valueType = a.Value
		case "value", "date-value", "time-value", "boolean-value":
			values[a.Name.Local] = a.Value
		}
	}
	switch valueType {
	case "float", "percentage", "currency":
		return values["value"]
	case "date":
		return values["date-value"]
	case "time":
		return values["time-value"]
	case "boolean":
		return values["boolean-value"]
	}
	return ""
}

func repeatAttr(se xml.StartElement, local string) int {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}
