package locations

import (
	"context"
	"errors"

	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
	"github.com/tu-usuario/almacen-wms/internal/domain/warehouse"
)

// Capacidad por defecto de las pseudo-ubicaciones de sistema (RECEPTION,
// marcadores DEST:...): efectivamente ilimitada.
const systemLocationCapacity = 100000

// UseCase registro de ubicaciones: alta individual, generación masiva por
// rangos, lookup normalizado y get-or-create de ubicaciones de sistema.
type UseCase struct {
	repo repository.LocationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.LocationRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create da de alta una ubicación. Código y zona se normalizan (trim +
// mayúsculas); código duplicado -> domain.ErrDuplicate.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*entity.Location, error) {
	code := warehouse.NormalizeCode(in.Code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	zone := warehouse.NormalizeCode(in.Zone)
	if zone == "" {
		zone = "Z1"
	}
	typ := in.Type
	if typ == "" {
		typ = entity.LocationTypeShelf
	}
	capacity := in.CapacityUnits
	if capacity <= 0 {
		capacity = 100
	}
	loc := &entity.Location{
		Code:          code,
		Zone:          zone,
		X:             in.X,
		Y:             in.Y,
		Z:             in.Z,
		Type:          typ,
		CapacityUnits: capacity,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// BulkGenerate recorre el producto cartesiano de los rangos y crea las
// ubicaciones que no existan, con códigos deterministas {ZONA}-X{xx}-Y{yy}[-Z{zz}].
// Nunca sobreescribe: los códigos existentes se cuentan como omitidos.
// El eje Z solo participa cuando z_from > 0 y z_to >= z_from.
func (uc *UseCase) BulkGenerate(ctx context.Context, in dto.BulkGenerateRequest) (*dto.BulkGenerateResponse, error) {
	zone := warehouse.NormalizeCode(in.Zone)
	if zone == "" {
		zone = "Z1"
	}
	if in.XFrom <= 0 || in.XTo < in.XFrom || in.YFrom <= 0 || in.YTo < in.YFrom {
		return nil, domain.ErrInvalidInput
	}
	typ := in.Type
	if typ == "" {
		typ = entity.LocationTypeShelf
	}
	capacity := in.CapacityUnits
	if capacity <= 0 {
		capacity = 100
	}
	includeZ := in.ZFrom > 0 && in.ZTo >= in.ZFrom

	res := &dto.BulkGenerateResponse{}
	for x := in.XFrom; x <= in.XTo; x++ {
		for y := in.YFrom; y <= in.YTo; y++ {
			if !includeZ {
				if err := uc.generateOne(ctx, zone, typ, x, y, nil, capacity, res); err != nil {
					return nil, err
				}
				continue
			}
			for z := in.ZFrom; z <= in.ZTo; z++ {
				zz := z
				if err := uc.generateOne(ctx, zone, typ, x, y, &zz, capacity, res); err != nil {
					return nil, err
				}
			}
		}
	}
	return res, nil
}

func (uc *UseCase) generateOne(ctx context.Context, zone, typ string, x, y int, z *int, capacity int, res *dto.BulkGenerateResponse) error {
	code := warehouse.BuildLocationCode(zone, x, y, z)
	exists, err := uc.repo.ExistsByCode(ctx, code)
	if err != nil {
		return err
	}
	if exists {
		res.Skipped++
		return nil
	}
	loc := &entity.Location{
		Code:          code,
		Zone:          zone,
		X:             x,
		Y:             y,
		Z:             z,
		Type:          typ,
		CapacityUnits: capacity,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		// Otra petición lo creó entre el exists y el insert: cuenta como omitido.
		if errors.Is(err, domain.ErrDuplicate) {
			res.Skipped++
			return nil
		}
		return err
	}
	res.Created++
	return nil
}

// Lookup busca una ubicación por código normalizado exacto.
// La ausencia es un resultado normal: domain.ErrNotFound, nunca un 500.
func (uc *UseCase) Lookup(ctx context.Context, code string) (*entity.Location, error) {
	code = warehouse.NormalizeCode(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return loc, nil
}

// GetOrCreateSystem get-or-create idempotente de pseudo-ubicaciones
// (RECEPTION, DEST:PRODUCCION, DEST:WS:..., cuarentena). La carrera
// check-then-insert se resuelve con la constraint única: duplicado -> re-lectura.
func (uc *UseCase) GetOrCreateSystem(ctx context.Context, code, locType string) (*entity.Location, error) {
	code = warehouse.NormalizeCode(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		return loc, nil
	}
	loc = &entity.Location{
		Code:          code,
		Zone:          code,
		Type:          locType,
		CapacityUnits: systemLocationCapacity,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return uc.repo.GetByCode(ctx, code)
		}
		return nil, err
	}
	return loc, nil
}

// List lista ubicaciones, opcionalmente filtradas por zona.
func (uc *UseCase) List(ctx context.Context, zone string, limit int) ([]*entity.Location, error) {
	if limit <= 0 {
		limit = 2000
	}
	return uc.repo.List(ctx, warehouse.NormalizeCode(zone), limit)
}

// Zones zonas distintas registradas.
func (uc *UseCase) Zones(ctx context.Context) ([]string, error) {
	return uc.repo.Zones(ctx)
}

// Delete borra una ubicación sin comprobar stock ni referencias: la decisión
// queda en el caller y en las constraints de la DB.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
