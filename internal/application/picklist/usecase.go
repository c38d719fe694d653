package picklist

import (
	"context"
	"errors"
	"sort"

	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

// UseCase resolutor de listas de picking: materializa una línea persistente
// por cada item de cada slot del BOM (principal + alternativas), registra el
// progreso escaneo a escaneo y calcula requerido-vs-disponible contra el
// stock materializado.
type UseCase struct {
	txRunner   TxRunner
	orderRepo  repository.BuildOrderRepository
	bomRepo    repository.BOMRepository
	pickRepo   repository.PickLineRepository
	itemRepo   repository.ItemRepository
	reportRepo repository.ReportRepository
	resolver   CodeResolver
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.BuildOrderRepository,
	bomRepo repository.BOMRepository,
	pickRepo repository.PickLineRepository,
	itemRepo repository.ItemRepository,
	reportRepo repository.ReportRepository,
	resolver CodeResolver,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		bomRepo:    bomRepo,
		pickRepo:   pickRepo,
		itemRepo:   itemRepo,
		reportRepo: reportRepo,
		resolver:   resolver,
	}
}

func (uc *UseCase) getOrder(ctx context.Context, orderID int64) (*entity.BuildOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// MaterializePickLines asegura que exista una línea por cada item de cada
// slot del modelo de la orden, con QuantityRequired duplicado entre principal
// y alternativas (son sustitutos, no aditivos) y QuantityPicked en 0 para las
// nuevas. Idempotente: nunca duplica líneas ni resetea progreso.
func (uc *UseCase) MaterializePickLines(ctx context.Context, orderID int64) (*dto.MaterializeResponse, error) {
	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	slots, err := uc.bomRepo.Slots(ctx, order.MachineModelID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.pickRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	have := make(map[int64]bool, len(existing))
	for _, l := range existing {
		have[l.ItemID] = true
	}

	res := &dto.MaterializeResponse{Existing: len(existing)}
	for _, slot := range slots {
		for _, itemID := range slot.ItemIDs() {
			if have[itemID] {
				continue
			}
			line := &entity.OrderPickLine{
				BuildOrderID:     orderID,
				ItemID:           itemID,
				QuantityRequired: slot.Component.Quantity,
				QuantityPicked:   0,
			}
			if err := uc.pickRepo.Create(ctx, line); err != nil {
				// Materialización concurrente: la constraint única decide.
				if errors.Is(err, domain.ErrDuplicate) {
					continue
				}
				return nil, err
			}
			have[itemID] = true
			res.Created++
		}
	}
	return res, nil
}

// RecordScan registra un escaneo de picking para la orden:
//
//   - código sin item -> domain.ErrNotFound;
//   - item fuera de todos los slots de la orden -> domain.ErrNotOnPickList;
//   - slot ya satisfecho (suma de picked entre principal y alternativas >=
//     requerido) -> respuesta "ya satisfecho" SIN mutación;
//   - en otro caso incrementa en 1 la línea del item escaneado, con las filas
//     de la orden bloqueadas para que dos escaneos simultáneos no sobrepasen
//     el requerido.
//
// Un conflicto de concurrencia se reintenta una vez; si el reintento también
// falla se devuelve domain.ErrRetryExhausted.
func (uc *UseCase) RecordScan(ctx context.Context, orderID int64, code string) (*dto.RecordScanResponse, error) {
	res, err := uc.recordScanOnce(ctx, orderID, code)
	if err != nil && errors.Is(err, domain.ErrConflict) && !isReferenced(err) {
		res, err = uc.recordScanOnce(ctx, orderID, code)
		if err != nil && errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrRetryExhausted
		}
	}
	return res, err
}

func isReferenced(err error) bool {
	var refErr *domain.ReferencedError
	return errors.As(err, &refErr)
}

func (uc *UseCase) recordScanOnce(ctx context.Context, orderID int64, code string) (*dto.RecordScanResponse, error) {
	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := uc.resolver.ResolveByScan(ctx, code)
	if err != nil {
		return nil, err
	}
	slots, err := uc.bomRepo.Slots(ctx, order.MachineModelID)
	if err != nil {
		return nil, err
	}
	var slot *repository.ComponentSlot
	for _, s := range slots {
		if s.Contains(item.ID) {
			slot = s
			break
		}
	}
	if slot == nil {
		return nil, domain.ErrNotOnPickList
	}

	var out *dto.RecordScanResponse
	err = uc.txRunner.RunPickList(ctx, func(pickRepo repository.PickLineRepository) error {
		lines, err := pickRepo.ListByOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		byItem := make(map[int64]*entity.OrderPickLine, len(lines))
		for _, l := range lines {
			byItem[l.ItemID] = l
		}
		sum := 0
		for _, id := range slot.ItemIDs() {
			if l, ok := byItem[id]; ok {
				sum += l.QuantityPicked
			}
		}
		required := slot.Component.Quantity
		if sum >= required {
			out = &dto.RecordScanResponse{
				SKU:              item.SKU,
				SlotPicked:       sum,
				SlotRequired:     required,
				Satisfied:        true,
				AlreadySatisfied: true,
			}
			return nil
		}
		line := byItem[item.ID]
		if line == nil {
			// Lista aún no materializada para este item: se crea al vuelo.
			line = &entity.OrderPickLine{
				BuildOrderID:     orderID,
				ItemID:           item.ID,
				QuantityRequired: required,
			}
			if err := pickRepo.Create(ctx, line); err != nil {
				return err
			}
		}
		line.QuantityPicked++
		if err := pickRepo.UpdatePicked(ctx, line); err != nil {
			return err
		}
		sum++
		out = &dto.RecordScanResponse{
			SKU:          item.SKU,
			SlotPicked:   sum,
			SlotRequired: required,
			Satisfied:    sum >= required,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPickList materializa (si hace falta) y devuelve la lista de picking de
// la orden: por slot, el item principal y cada alternativa con su
// disponibilidad por ubicación, ordenados para una ruta caminable (zona del
// primer hueco con stock, luego código, luego SKU; sin stock al final).
func (uc *UseCase) GetPickList(ctx context.Context, orderID int64) (*dto.PickListResponse, error) {
	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.MaterializePickLines(ctx, orderID); err != nil {
		return nil, err
	}
	model, err := uc.bomRepo.GetModel(ctx, order.MachineModelID)
	if err != nil {
		return nil, err
	}
	modelName := ""
	if model != nil {
		modelName = model.Name
	}
	slots, err := uc.bomRepo.Slots(ctx, order.MachineModelID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.pickRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	pickedByItem := make(map[int64]int, len(lines))
	for _, l := range lines {
		pickedByItem[l.ItemID] = l.QuantityPicked
	}

	resp := &dto.PickListResponse{OrderID: orderID, MachineModelName: modelName}
	for _, slot := range slots {
		slotDTO := dto.PickListSlotDTO{
			ComponentID:      slot.Component.ID,
			Notes:            slot.Component.Notes,
			QuantityRequired: slot.Component.Quantity,
		}
		for i, itemID := range slot.ItemIDs() {
			line, err := uc.buildLine(ctx, itemID, i == 0, pickedByItem[itemID])
			if err != nil {
				return nil, err
			}
			slotDTO.QuantityPicked += line.QuantityPicked
			slotDTO.Lines = append(slotDTO.Lines, *line)
		}
		slotDTO.Satisfied = slotDTO.QuantityPicked >= slotDTO.QuantityRequired
		sortLines(slotDTO.Lines)
		resp.Slots = append(resp.Slots, slotDTO)
	}
	sortSlots(resp.Slots)
	return resp, nil
}

func (uc *UseCase) buildLine(ctx context.Context, itemID int64, primary bool, picked int) (*dto.PickListLineDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.reportRepo.StockByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	line := &dto.PickListLineDTO{
		ItemID:         item.ID,
		SKU:            item.SKU,
		Name:           item.Name,
		ModelOrType:    item.ModelOrType,
		IsPrimary:      primary,
		QuantityPicked: picked,
		Locations:      make([]dto.PickListLocationDTO, 0, len(rows)),
	}
	for _, r := range rows {
		line.TotalAvailable += r.Quantity
		line.Locations = append(line.Locations, dto.PickListLocationDTO{
			Code:     r.LocationCode,
			Zone:     r.Zone,
			Quantity: r.Quantity,
		})
	}
	return line, nil
}

// routeKey clave de ordenación caminable de una línea: zona y código de la
// primera ubicación con stock; las líneas sin stock ordenan al final.
func routeKey(l *dto.PickListLineDTO) (noStock bool, zone, code string) {
	if len(l.Locations) == 0 {
		return true, "", ""
	}
	first := l.Locations[0]
	for _, loc := range l.Locations[1:] {
		if loc.Zone < first.Zone || (loc.Zone == first.Zone && loc.Code < first.Code) {
			first = loc
		}
	}
	return false, first.Zone, first.Code
}

func sortLines(lines []dto.PickListLineDTO) {
	sort.SliceStable(lines, func(i, j int) bool {
		ni, zi, ci := routeKey(&lines[i])
		nj, zj, cj := routeKey(&lines[j])
		if ni != nj {
			return !ni
		}
		if zi != zj {
			return zi < zj
		}
		if ci != cj {
			return ci < cj
		}
		return lines[i].SKU < lines[j].SKU
	})
}

func sortSlots(slots []dto.PickListSlotDTO) {
	sort.SliceStable(slots, func(i, j int) bool {
		if len(slots[i].Lines) == 0 || len(slots[j].Lines) == 0 {
			return len(slots[i].Lines) > len(slots[j].Lines)
		}
		li, lj := &slots[i].Lines[0], &slots[j].Lines[0]
		ni, zi, ci := routeKey(li)
		nj, zj, cj := routeKey(lj)
		if ni != nj {
			return !ni
		}
		if zi != zj {
			return zi < zj
		}
		if ci != cj {
			return ci < cj
		}
		return li.SKU < lj.SKU
	})
}
