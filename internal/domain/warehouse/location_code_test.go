package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-wms/internal/domain/warehouse"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "Z1-X01-Y02", warehouse.NormalizeCode("  z1-x01-y02 "))
	assert.Equal(t, "RECEPTION", warehouse.NormalizeCode("reception"))
	assert.Equal(t, "", warehouse.NormalizeCode("   "))
}

func TestBuildLocationCode(t *testing.T) {
	assert.Equal(t, "Z1-X01-Y02", warehouse.BuildLocationCode("z1", 1, 2, nil))
	assert.Equal(t, "A-X10-Y09", warehouse.BuildLocationCode("A", 10, 9, nil))

	z := 3
	assert.Equal(t, "Z2-X05-Y12-Z03", warehouse.BuildLocationCode("Z2", 5, 12, &z))
}
