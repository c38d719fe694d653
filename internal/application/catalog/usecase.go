package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

// UseCase catálogo de items y etiquetas: alta idempotente por SKU, etiquetas
// idempotentes por código, resolución de escaneos y guardia de borrado.
type UseCase struct {
	itemRepo repository.ItemRepository
	tagRepo  repository.TagRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(itemRepo repository.ItemRepository, tagRepo repository.TagRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo, tagRepo: tagRepo}
}

// CreateOrGetItemMinimal alta mínima idempotente por SKU: si el SKU ya existe
// (match exacto, case-sensitive) devuelve el item existente sin tocarlo.
// Unit en blanco -> "ud".
func (uc *UseCase) CreateOrGetItemMinimal(ctx context.Context, sku, name, family, unit string, materialID *int64) (*entity.Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if strings.TrimSpace(unit) == "" {
		unit = "ud"
	}
	item := &entity.Item{
		SKU:        sku,
		Name:       strings.TrimSpace(name),
		Family:     strings.TrimSpace(family),
		Unit:       unit,
		MaterialID: materialID,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		// Carrera con otra alta del mismo SKU: la constraint única manda.
		if errors.Is(err, domain.ErrDuplicate) {
			return uc.itemRepo.GetBySKU(ctx, sku)
		}
		return nil, err
	}
	return item, nil
}

// GetItem obtiene un item por id.
func (uc *UseCase) GetItem(ctx context.Context, id int64) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// UpdateItem actualiza los campos editables de un item.
func (uc *UseCase) UpdateItem(ctx context.Context, id int64, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Family != nil {
		item.Family = strings.TrimSpace(*in.Family)
	}
	if in.ModelOrType != nil {
		item.ModelOrType = strings.TrimSpace(*in.ModelOrType)
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.IsSerialized != nil {
		item.IsSerialized = *in.IsSerialized
	}
	if in.MaterialID != nil {
		item.MaterialID = in.MaterialID
	}
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Search busca items por SKU o nombre.
func (uc *UseCase) Search(ctx context.Context, query string, limit int) ([]*entity.Item, error) {
	if limit <= 0 {
		limit = 200
	}
	return uc.itemRepo.Search(ctx, strings.TrimSpace(query), limit)
}

// AttachTag adjunta una etiqueta física a un item, idempotente por código:
//   - código ya asociado al mismo item -> devuelve la etiqueta existente;
//   - código asociado a OTRO item -> domain.ErrConflict (nunca un no-op
//     silencioso que re-vincule);
//   - código en blanco -> se genera uno interno "IT-XXXXXXXX" de tipo QR.
//
// PackQuantity se acota a mínimo 1.
func (uc *UseCase) AttachTag(ctx context.Context, itemID int64, code, tagType string, packQuantity int) (*entity.Tag, error) {
	item, err := uc.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		code = generatedTagCode()
		tagType = entity.TagTypeQR
	}
	tagType = strings.ToUpper(strings.TrimSpace(tagType))
	if tagType == "" {
		tagType = entity.TagTypeRFID
	}
	if packQuantity < 1 {
		packQuantity = 1
	}
	existing, err := uc.tagRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.ItemID == item.ID {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: el código %q ya pertenece a otro item", domain.ErrConflict, code)
	}
	tag := &entity.Tag{
		Code:         code,
		TagType:      tagType,
		PackQuantity: packQuantity,
		ItemID:       item.ID,
	}
	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			existing, gerr := uc.tagRepo.GetByCode(ctx, code)
			if gerr != nil {
				return nil, gerr
			}
			if existing != nil && existing.ItemID == item.ID {
				return existing, nil
			}
			return nil, fmt.Errorf("%w: el código %q ya pertenece a otro item", domain.ErrConflict, code)
		}
		return nil, err
	}
	return tag, nil
}

// ResolveByScan resuelve un código escaneado a su item: primero match exacto
// de Tag.Code, después fallback a Item.SKU. Sin match -> domain.ErrNotFound.
func (uc *UseCase) ResolveByScan(ctx context.Context, code string) (*entity.Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	tag, err := uc.tagRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		return uc.GetItem(ctx, tag.ItemID)
	}
	item, err := uc.itemRepo.GetBySKU(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ResolveTag resuelve un código a (etiqueta, item). La etiqueta puede venir
// nil cuando el código coincide con un SKU sin etiqueta propia; los callers
// que necesitan el pack tratan ese caso como pack=1.
func (uc *UseCase) ResolveTag(ctx context.Context, code string) (*entity.Tag, *entity.Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	tag, err := uc.tagRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if tag != nil {
		item, err := uc.GetItem(ctx, tag.ItemID)
		if err != nil {
			return nil, nil, err
		}
		return tag, item, nil
	}
	item, err := uc.itemRepo.GetBySKU(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrNotFound
	}
	return nil, item, nil
}

// ItemDetail item con sus etiquetas.
func (uc *UseCase) ItemDetail(ctx context.Context, id int64) (*entity.Item, []*entity.Tag, error) {
	item, err := uc.GetItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	tags, err := uc.tagRepo.ListByItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return item, tags, nil
}

// DeleteItem borra un item solo si nada lo referencia. Con referencias
// (componentes de modelo, alternativas, líneas de picking, tareas de robot)
// devuelve un ReferencedError que enumera cada conteo; el fallo FK crudo de
// la DB queda como red de seguridad y se traduce al mismo tipo de error.
func (uc *UseCase) DeleteItem(ctx context.Context, id int64) error {
	item, err := uc.GetItem(ctx, id)
	if err != nil {
		return err
	}
	refs, err := uc.itemRepo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	blocking := refs[:0:0]
	for _, r := range refs {
		if r.Count > 0 {
			blocking = append(blocking, r)
		}
	}
	if len(blocking) > 0 {
		return &domain.ReferencedError{Entity: item.SKU, Refs: blocking}
	}
	if err := uc.itemRepo.Delete(ctx, id); err != nil {
		// Red de seguridad: referencia creada entre el conteo y el delete.
		if errors.Is(err, domain.ErrConflict) {
			return &domain.ReferencedError{Entity: item.SKU, Refs: []domain.RefCount{{Kind: "referencia(s) existente(s)", Count: 1}}}
		}
		return err
	}
	return nil
}

// generatedTagCode código interno para etiquetas sin código físico: IT- más
// los 8 primeros caracteres de un uuid, en mayúsculas.
func generatedTagCode() string {
	return "IT-" + strings.ToUpper(uuid.New().String()[:8])
}
