package loader_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-analitica/internal/domain"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
	"github.com/jhoicas/inventario-analitica/internal/infrastructure/loader"
)

const sampleCSV = "codigo,nombre,categoria,ubicacion,cantidad,precio\n" +
	"PR001,Martillo,Herramientas,A1,5,10\n" +
	"PR2,Taladro,Herramientas,A2,200,50\n"

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// ──────────────────────────────────────────────────────────────────────────────
// CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestParseBytes_CSV(t *testing.T) {
	table, err := loader.ParseBytes("inventario.csv", []byte(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"codigo", "nombre", "categoria", "ubicacion", "cantidad", "precio"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "PR2", table.Rows[1]["codigo"])
	assert.Equal(t, "200", table.Rows[1]["cantidad"])
}

func TestParseBytes_CSVCabeceraNormalizadaYCeldasVacias(t *testing.T) {
	data := "\xEF\xBB\xBF Codigo ;NOMBRE;Categoria;Cantidad;Precio\n" +
		"PR001;Martillo;;5;10\n" +
		";;;;\n" +
		"PR003;Tornillo;Ferretería;1;0,5\n"

	table, err := loader.ParseBytes("datos.CSV", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"codigo", "nombre", "categoria", "cantidad", "precio"}, table.Columns)
	require.Len(t, table.Rows, 2, "las filas totalmente vacías se ignoran")
	assert.Nil(t, table.Rows[0]["categoria"])
	assert.Equal(t, "Ferretería", table.Rows[1]["categoria"])
}

func TestParseBytes_CSVWindows1252(t *testing.T) {
	data := []byte("codigo\tnombre\tcategoria\tcantidad\tprecio\nPR001\tCami\xf3n\tFerreter\xeda\t1\t2\n")

	table, err := loader.ParseBytes("latin.csv", data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Camión", table.Rows[0]["nombre"])
	assert.Equal(t, "Ferretería", table.Rows[0]["categoria"])
}

func TestParseBytes_SoloCabecera(t *testing.T) {
	table, err := loader.ParseBytes("vacio.csv", []byte("codigo,nombre,categoria,cantidad,precio\n"))
	require.NoError(t, err)
	assert.Len(t, table.Columns, 5)
	assert.Empty(t, table.Rows)
}

func TestParseBytes_SinCabecera(t *testing.T) {
	_, err := loader.ParseBytes("vacio.csv", []byte("  \n\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyOrCorrupt))
}

func TestParseBytes_ExtensionNoSoportada(t *testing.T) {
	_, err := loader.ParseBytes("inventario.txt", []byte(sampleCSV))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestParseBytes_CorruptoXLSX(t *testing.T) {
	_, err := loader.ParseBytes("roto.xlsx", []byte("no es un zip"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyOrCorrupt))
}

// ──────────────────────────────────────────────────────────────────────────────
// XLSX / ODS
// ──────────────────────────────────────────────────────────────────────────────

func TestParseBytes_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"codigo", "nombre", "categoria", "cantidad", "precio"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"PR001", "Martillo", "Herramientas", 5, 10.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"PR002", "Taladro", "Herramientas", 200, 50}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := loader.ParseBytes("inventario.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"codigo", "nombre", "categoria", "cantidad", "precio"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Martillo", table.Rows[0]["nombre"])
	assert.Equal(t, "10.5", table.Rows[0]["precio"])
}

const odsContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:spreadsheet>
<table:table table:name="Hoja1">
 <table:table-row>
  <table:table-cell office:value-type="string"><text:p>Codigo</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Nombre</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Categoria</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Cantidad</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Precio</text:p></table:table-cell>
  <table:table-cell table:number-columns-repeated="1019"/>
 </table:table-row>
 <table:table-row table:number-rows-repeated="2">
  <table:table-cell office:value-type="string"><text:p>PR001</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Martillo</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Herramientas</text:p></table:table-cell>
  <table:table-cell office:value-type="float" office:value="5"><text:p>5</text:p></table:table-cell>
  <table:table-cell office:value-type="currency" office:value="10.5"><text:p>$10,50</text:p></table:table-cell>
 </table:table-row>
 <table:table-row>
  <table:table-cell office:value-type="string"><text:p>PR002</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Taladro<text:s/>Percutor</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>Herramientas</text:p></table:table-cell>
  <table:table-cell table:number-columns-repeated="2" office:value-type="float" office:value="7"><text:p>7</text:p></table:table-cell>
 </table:table-row>
 <table:table-row table:number-rows-repeated="1048573">
  <table:table-cell table:number-columns-repeated="1024"/>
 </table:table-row>
</table:table>
</office:spreadsheet></office:body>
</office:document-content>`

func odsBytes(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("mimetype")
	require.NoError(t, err)
	_, err = w.Write([]byte("application/vnd.oasis.opendocument.spreadsheet"))
	require.NoError(t, err)
	w, err = zw.Create("content.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseBytes_ODS(t *testing.T) {
	table, err := loader.ParseBytes("inventario.ods", odsBytes(t, odsContent))
	require.NoError(t, err)

	assert.Equal(t, []string{"codigo", "nombre", "categoria", "cantidad", "precio"}, table.Columns)
	require.Len(t, table.Rows, 3, "la fila repetida se expande y las vacías finales se ignoran")
	assert.Equal(t, table.Rows[0], table.Rows[1])
	assert.Equal(t, "10.5", table.Rows[0]["precio"], "se usa office:value, no el texto mostrado")
	assert.Equal(t, "Taladro Percutor", table.Rows[2]["nombre"])
	assert.Equal(t, "7", table.Rows[2]["cantidad"])
	assert.Equal(t, "7", table.Rows[2]["precio"])
}

func TestParseBytes_ODSSinContenido(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	require.NoError(t, zw.Close())

	_, err := loader.ParseBytes("roto.ods", buf.Bytes())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyOrCorrupt))
}

// ──────────────────────────────────────────────────────────────────────────────
// Load / FindActualFilePath
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_LimpiezaDeExtremoAExtremo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inventario.csv", []byte(sampleCSV))

	table, err := loader.Load(path, false)
	require.NoError(t, err)

	records, _, err := inventory.Clean(table)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "PR002", records[1].Codigo)
	assert.Equal(t, 10000.0, records[1].ValorTotal)
}

func TestLoad_Alternativas(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "inventario.csv", []byte(sampleCSV))
	missing := filepath.Join(dir, "inventario.xlsx")

	table, err := loader.Load(missing, true)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	_, err = loader.Load(missing, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "inventario.csv", "el mensaje lista los archivos disponibles")
}

func TestLoad_NoEncontrado(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "nada.ods"), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLoad_ExtensionNoSoportada(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inventario.json", []byte("{}"))

	_, err := loader.Load(path, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestFindActualFilePath(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "inventario")

	_, err := loader.FindActualFilePath(base)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	writeFile(t, dir, "inventario.ods", odsBytes(t, odsContent))
	writeFile(t, dir, "inventario.xlsx", []byte("x"))

	got, err := loader.FindActualFilePath(base)
	require.NoError(t, err)
	assert.Equal(t, base+".xlsx", got, "gana la primera extensión soportada en orden")
}
