package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/warehouse"
)

// ──────────────────────────────────────────────────────────────────────────────
// Política de cantidad efectiva
// ──────────────────────────────────────────────────────────────────────────────

func TestEffectiveQuantity_ItemSerializado_SiempreUno(t *testing.T) {
	item := &entity.Item{SKU: "MOTOR-01", IsSerialized: true}
	tag := &entity.Tag{Code: "RF-1", PackQuantity: 10, ItemID: 1}

	// Serializado manda sobre el pack y sobre lo solicitado.
	assert.Equal(t, 1, warehouse.EffectiveQuantity(item, tag, 1))
	assert.Equal(t, 1, warehouse.EffectiveQuantity(item, tag, 5))
	assert.Equal(t, 1, warehouse.EffectiveQuantity(item, nil, 99))
}

func TestEffectiveQuantity_EtiquetaDePack_SustituyeElSentinel(t *testing.T) {
	item := &entity.Item{SKU: "TORN-M4"}
	caja := &entity.Tag{Code: "CAJA-10", PackQuantity: 10, ItemID: 2}

	// Cantidad por defecto (1) con pack > 1: se mueve la caja entera.
	assert.Equal(t, 10, warehouse.EffectiveQuantity(item, caja, 1))
	// Cantidad explícita distinta de 1: se respeta lo pedido.
	assert.Equal(t, 3, warehouse.EffectiveQuantity(item, caja, 3))
}

func TestEffectiveQuantity_SinEtiqueta_RespetaLoSolicitado(t *testing.T) {
	item := &entity.Item{SKU: "TORN-M4"}

	assert.Equal(t, 1, warehouse.EffectiveQuantity(item, nil, 1))
	assert.Equal(t, 7, warehouse.EffectiveQuantity(item, nil, 7))
}

func TestEffectiveQuantity_CantidadInvalida_MinimoUno(t *testing.T) {
	item := &entity.Item{SKU: "TORN-M4"}

	assert.Equal(t, 1, warehouse.EffectiveQuantity(item, nil, 0))
	assert.Equal(t, 1, warehouse.EffectiveQuantity(item, nil, -5))

	// Cero/negativo se normaliza al sentinel y por tanto dispara el pack.
	caja := &entity.Tag{Code: "CAJA-5", PackQuantity: 5}
	assert.Equal(t, 5, warehouse.EffectiveQuantity(item, caja, 0))
}
