package entity

// MachineModel modelo de máquina con su lista de componentes (BOM).
type MachineModel struct {
	ID     int64
	Name   string
	Active bool
}

// MachineModelComponent componente (repuesto) necesario para fabricar una
// máquina del modelo. Quantity es la cantidad requerida por máquina.
type MachineModelComponent struct {
	ID             int64
	MachineModelID int64
	ItemID         int64
	Quantity       int
	Notes          string
}

// ComponentAlternative item alternativo para un componente: al hacer picking
// cualquiera de las alternativas sustituye 1:1 al item principal.
type ComponentAlternative struct {
	ID          int64
	ComponentID int64
	ItemID      int64
	SortOrder   int
}
