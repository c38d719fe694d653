package warehouse

import "github.com/tu-usuario/almacen-wms/internal/domain/entity"

// EffectiveQuantity resuelve la cantidad a mover antes de invocar al ledger
// (servicio de dominio puro, política del caller):
//   - item serializado: siempre 1, sin importar lo solicitado;
//   - cantidad solicitada igual al sentinel por defecto (1) y etiqueta con
//     pack > 1: se sustituye por el pack completo (escanear una caja mueve la
//     caja entera);
//   - en el resto de casos, lo solicitado (mínimo 1).
func EffectiveQuantity(item *entity.Item, tag *entity.Tag, requested int) int {
	qty := requested
	if qty < 1 {
		qty = 1
	}
	if item.IsSerialized {
		return 1
	}
	pack := 1
	if tag != nil && tag.PackQuantity > 1 {
		pack = tag.PackQuantity
	}
	if qty == 1 && pack > 1 {
		return pack
	}
	return qty
}
