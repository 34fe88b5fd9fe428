package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nota-fiscal/internal/application/issuing"
	"github.com/jhoicas/nota-fiscal/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DOCUMENT_LOCALE", "pt-BR")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEmit_NotaDeProducto(t *testing.T) {
	out, err := run(t, "emit",
		"--tax-id", "11.222.333/0001-81", "--legal-name", "Balão Apagado SA",
		"--item", "500", "--item", "1000", "--item", "1500")
	require.NoError(t, err)

	assert.Contains(t, out, `"tax_amount": "60"`)
	assert.Contains(t, out, `"total_value": "3000"`)
}

func TestEmit_ItemSinValor(t *testing.T) {
	_, err := run(t, "emit", "--tax-id", "1", "--legal-name", "X", "--item", "500", "--item", "-")
	assert.ErrorIs(t, err, domain.ErrUnsetAmount)
}

func TestEmit_ItemInvalido(t *testing.T) {
	_, err := run(t, "emit", "--tax-id", "1", "--legal-name", "X", "--item", "quinientos")
	assert.ErrorContains(t, err, "--item 1")
}

func TestEmit_XMLEInspect(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "nota.xml")

	_, err := run(t, "emit", "--kind", "service",
		"--tax-id", "11.222.333/0001-81", "--legal-name", "Balão Apagado SA",
		"--item", "100", "--xml", xmlPath, "--reissue")
	require.NoError(t, err)
	require.FileExists(t, xmlPath)
	require.FileExists(t, filepath.Join(dir, "nota-copia.xml"))

	out, err := run(t, "inspect", xmlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Huella:    ok")
	assert.Contains(t, out, "Itens:     1")
}

func TestInspect_HuellaAlterada(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "nota.xml")
	_, err := run(t, "emit", "--tax-id", "11.222.333/0001-81", "--legal-name", "Balão Apagado SA",
		"--item", "100", "--xml", xmlPath)
	require.NoError(t, err)

	data, err := os.ReadFile(xmlPath)
	require.NoError(t, err)
	tampered := bytes.Replace(data, []byte("<Valor>100.00</Valor>"), []byte("<Valor>900.00</Valor>"), 1)
	require.NoError(t, os.WriteFile(xmlPath, tampered, 0o644))

	out, err := run(t, "inspect", xmlPath)
	assert.Error(t, err)
	assert.Contains(t, out, "NO COINCIDE")
}

// emitXML emite una nota de un ítem de 100 en dir y devuelve el contenido del XML.
func emitXML(t *testing.T, dir string) (string, []byte) {
	t.Helper()
	xmlPath := filepath.Join(dir, "nota.xml")
	_, err := run(t, "emit", "--tax-id", "11.222.333/0001-81", "--legal-name", "Balão Apagado SA",
		"--item", "100", "--xml", xmlPath)
	require.NoError(t, err)
	data, err := os.ReadFile(xmlPath)
	require.NoError(t, err)
	return xmlPath, data
}

func TestInspect_TotalAlterado(t *testing.T) {
	xmlPath, data := emitXML(t, t.TempDir())
	tampered := bytes.Replace(data, []byte("<ValorTotal>100.00</ValorTotal>"), []byte("<ValorTotal>9999.00</ValorTotal>"), 1)
	require.NotEqual(t, data, tampered)
	require.NoError(t, os.WriteFile(xmlPath, tampered, 0o644))

	out, err := run(t, "inspect", xmlPath)
	require.Error(t, err)
	assert.Contains(t, out, "TOTAL NO COINCIDE")
	assert.Contains(t, out, "100,00", "muestra el total recalculado")
	assert.NotContains(t, out, "9.999,00")
}

func TestInspect_SinHuella(t *testing.T) {
	xmlPath, data := emitXML(t, t.TempDir())
	stripped := regexp.MustCompile(`<Huella>[0-9a-f]+</Huella>`).ReplaceAll(data, nil)
	require.NotEqual(t, data, stripped)
	require.NoError(t, os.WriteFile(xmlPath, stripped, 0o644))

	out, err := run(t, "inspect", xmlPath)
	require.Error(t, err)
	assert.Contains(t, out, "Huella:    sin huella")
	assert.ErrorContains(t, err, "no tiene huella")
}

func TestRenderingPath(t *testing.T) {
	original := &issuing.Issued{ID: "a"}
	copied := &issuing.Issued{ID: "b", SourceID: "a"}

	assert.Equal(t, "out/nota.pdf", renderingPath("out/nota.pdf", original))
	assert.Equal(t, "out/nota-copia.pdf", renderingPath("out/nota.pdf", copied))
	assert.Equal(t, "nota-copia", renderingPath("nota", copied))
}
