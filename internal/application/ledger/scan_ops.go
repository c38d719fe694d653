package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/warehouse"
)

// Código de la pseudo-ubicación de recepción, origen por defecto del putaway.
const receptionCode = "RECEPTION"

// ScanOps flujos de almacén guiados por escaneo (putaway y pick). Son los
// callers del ledger: resuelven códigos y cantidades efectivas, hacen el
// check duro de disponibilidad ANTES de invocar ApplyMovement y nunca dejan
// esa validación en manos del ledger.
type ScanOps struct {
	ledger   *UseCase
	resolver CodeResolver
	sysLocs  SystemLocations
}

// NewScanOps construye los flujos de escaneo sobre el ledger.
func NewScanOps(ledger *UseCase, resolver CodeResolver, sysLocs SystemLocations) *ScanOps {
	return &ScanOps{ledger: ledger, resolver: resolver, sysLocs: sysLocs}
}

// Putaway guarda lo escaneado en una ubicación: TRANSFER desde RECEPTION
// hacia la ubicación destino. La cantidad efectiva aplica la política de
// item serializado y de pack de la etiqueta.
func (s *ScanOps) Putaway(ctx context.Context, in dto.PutawayRequest, performedBy string) (*dto.ScanMoveResponse, error) {
	tagCode := strings.TrimSpace(in.TagCode)
	locCode := warehouse.NormalizeCode(in.LocationCode)
	if tagCode == "" || locCode == "" {
		return nil, fmt.Errorf("%w: hay que escanear la etiqueta y la ubicación", domain.ErrInvalidInput)
	}
	tag, item, err := s.resolver.ResolveTag(ctx, tagCode)
	if err != nil {
		return nil, err
	}
	loc, err := s.sysLocs.Lookup(ctx, locCode)
	if err != nil {
		return nil, err
	}
	qty := warehouse.EffectiveQuantity(item, tag, in.Quantity)
	reception, err := s.sysLocs.GetOrCreateSystem(ctx, receptionCode, entity.LocationTypeReception)
	if err != nil {
		return nil, err
	}
	txID, err := s.ledger.ApplyMovement(ctx, MovementInput{
		Type:           entity.MovementTypeTRANSFER,
		ItemID:         item.ID,
		Quantity:       qty,
		FromLocationID: &reception.ID,
		ToLocationID:   &loc.ID,
		PerformedBy:    performedBy,
		Notes:          "Putaway " + tagCode,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ScanMoveResponse{
		TransactionID: txID,
		SKU:           item.SKU,
		Quantity:      qty,
		FromLocation:  reception.Code,
		ToLocation:    loc.Code,
	}, nil
}

// Pick saca stock de una ubicación hacia un destino resuelto
// (DEST:PRODUCCION, DEST:TALLER, DEST:WS:<ref>, DEST:PEDIDO:<ref> o código
// libre). El check de stock insuficiente es duro y ocurre aquí, leyendo el
// snapshot antes de mover: el ledger en sí nunca rechaza un decremento.
func (s *ScanOps) Pick(ctx context.Context, in dto.PickRequest, performedBy string) (*dto.ScanMoveResponse, error) {
	locCode := warehouse.NormalizeCode(in.LocationCode)
	tagCode := strings.TrimSpace(in.TagCode)
	if locCode == "" || tagCode == "" {
		return nil, fmt.Errorf("%w: hay que escanear la ubicación y la etiqueta", domain.ErrInvalidInput)
	}
	fromLoc, err := s.sysLocs.Lookup(ctx, locCode)
	if err != nil {
		return nil, err
	}
	tag, item, err := s.resolver.ResolveTag(ctx, tagCode)
	if err != nil {
		return nil, err
	}
	qty := warehouse.EffectiveQuantity(item, tag, in.Quantity)

	snap, err := s.ledger.Stock(ctx, item.ID, fromLoc.ID)
	if err != nil {
		return nil, err
	}
	if snap.Quantity < qty {
		return nil, fmt.Errorf("%w en %s: disponible=%d, solicitado=%d",
			domain.ErrInsufficientStock, fromLoc.Code, snap.Quantity, qty)
	}

	destCode := ResolveDestinationCode(in.DestinationType, in.DestinationRef)
	if destCode == "" {
		return nil, fmt.Errorf("%w: destino inválido", domain.ErrInvalidInput)
	}
	toLoc, err := s.sysLocs.GetOrCreateSystem(ctx, destCode, entity.LocationTypeOutput)
	if err != nil {
		return nil, err
	}
	txID, err := s.ledger.ApplyMovement(ctx, MovementInput{
		Type:           entity.MovementTypeTRANSFER,
		ItemID:         item.ID,
		Quantity:       qty,
		FromLocationID: &fromLoc.ID,
		ToLocationID:   &toLoc.ID,
		PerformedBy:    performedBy,
		Notes:          "Pick " + tagCode,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ScanMoveResponse{
		TransactionID: txID,
		SKU:           item.SKU,
		Quantity:      qty,
		FromLocation:  fromLoc.Code,
		ToLocation:    toLoc.Code,
	}, nil
}

// ResolveDestinationCode traduce el tipo de destino y su referencia al código
// de la pseudo-ubicación marcador. Vacío = destino inválido.
func ResolveDestinationCode(destinationType, destinationRef string) string {
	destinationType = warehouse.NormalizeCode(destinationType)
	destinationRef = warehouse.NormalizeCode(destinationRef)
	switch destinationType {
	case "PROD":
		return "DEST:PRODUCCION"
	case "TALLER":
		return "DEST:TALLER"
	case "WS":
		if destinationRef == "" {
			return ""
		}
		return "DEST:WS:" + destinationRef
	case "ORDER":
		if destinationRef == "" {
			return ""
		}
		return "DEST:PEDIDO:" + destinationRef
	case "CUSTOM":
		return destinationRef
	}
	return ""
}
