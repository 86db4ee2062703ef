package bankimport_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbertolucci/conciliador/internal/bankimport"
)

func TestParseStatement(t *testing.T) {
	input := strings.Join([]string{
		"id_externo;data;descricao;valor",
		"TX001;10/03/2024;TED Cliente X;1.000,00",
		"TX002;11/03/2024;Boleto Fornecedor ABC;-588,74",
		";12/03/2024;Tarifa bancária;-12,90",
	}, "\n")

	movements, err := bankimport.ParseStatement(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 3)

	assert.Equal(t, "TX001", movements[0].ExternalID)
	assert.Equal(t, "TED Cliente X", movements[0].Description)
	assert.Equal(t, int64(100000), movements[0].AmountCents)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), movements[0].Date)

	assert.Equal(t, int64(-58874), movements[1].AmountCents)

	assert.Empty(t, movements[2].ExternalID)
	assert.Equal(t, int64(-1290), movements[2].AmountCents)
}

func TestParseStatement_NoHeader(t *testing.T) {
	input := "TX001;10/03/2024;TED Cliente X;1.000,00\n"

	movements, err := bankimport.ParseStatement(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "TX001", movements[0].ExternalID)
}

func TestParseStatement_TrimsFields(t *testing.T) {
	input := " TX001 ; 10/03/2024 ; TED Cliente X ; 1.000,00 \n"

	movements, err := bankimport.ParseStatement(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 1)

	assert.Equal(t, "TX001", movements[0].ExternalID)
	assert.Equal(t, "TED Cliente X", movements[0].Description)
	assert.Equal(t, int64(100000), movements[0].AmountCents)
}

func TestParseStatement_MalformedDateOnFirstDataRow(t *testing.T) {
	// A numeric amount means line 1 is data, not a header: a broken date
	// there must surface as an error instead of dropping the row.
	input := strings.Join([]string{
		"TX001;10/13/2024;TED Cliente X;1.000,00",
		"TX002;11/03/2024;Boleto;100,00",
	}, "\n")

	_, err := bankimport.ParseStatement(strings.NewReader(input))
	assert.ErrorContains(t, err, "parsing date")
}

func TestParseStatement_BadDateAfterFirstLine(t *testing.T) {
	input := strings.Join([]string{
		"TX001;10/03/2024;TED Cliente X;1.000,00",
		"TX002;2024-03-11;Boleto;100,00",
	}, "\n")

	_, err := bankimport.ParseStatement(strings.NewReader(input))
	assert.ErrorContains(t, err, "parsing date")
}

func TestParseStatement_BadAmount(t *testing.T) {
	input := "TX001;10/03/2024;TED Cliente X;mil reais\n"

	_, err := bankimport.ParseStatement(strings.NewReader(input))
	assert.ErrorContains(t, err, "parsing amount")
}

func TestParseStatement_WrongColumnCount(t *testing.T) {
	input := "TX001;10/03/2024;TED Cliente X\n"

	_, err := bankimport.ParseStatement(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParseStatement_Empty(t *testing.T) {
	movements, err := bankimport.ParseStatement(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, movements)
}
