package dto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicine-inventory-api/internal/application/dto"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
)

func TestValidate_DisposalValida(t *testing.T) {
	in := dto.RegisterDisposalRequest{ItemID: "i1", BatchID: "B1", Quantity: 5, Reason: "vencido"}
	assert.NoError(t, dto.Validate(in))
}

func TestValidate_CampoFaltanteReportaNombreJSON(t *testing.T) {
	in := dto.RegisterDisposalRequest{ItemID: "i1", Quantity: 5, Reason: "vencido"}

	err := dto.Validate(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "batch_id", verr.Field)
	assert.Equal(t, "es requerido", verr.Message)
}

func TestValidate_CantidadNoPositiva(t *testing.T) {
	for _, qty := range []int64{0, -3} {
		err := dto.Validate(dto.RegisterDisposalRequest{ItemID: "i1", BatchID: "B1", Quantity: qty, Reason: "x"})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "cantidad %d", qty)
		assert.Equal(t, "quantity", verr.Field)
	}
}

func TestValidate_TipoDeAjusteInvalido(t *testing.T) {
	err := dto.Validate(dto.RegisterAdjustmentRequest{ItemID: "i1", BatchID: "B1", Quantity: 1, Type: "Multiply", Reason: "x"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "type", verr.Field)
	assert.Contains(t, verr.Message, "Addition Subtraction")
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{Limit: 0, Offset: -1}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = dto.PageRequest{Limit: 1000}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit)
}
